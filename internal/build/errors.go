package build

import "errors"

var (
	ErrUnknownBuilder      = errors.New("unknown builder")
	ErrBuild               = errors.New("build failed")
	ErrFileSystemOperation = errors.New("file system operation failed")
	ErrCopy                = errors.New("copy failed")
	ErrNoSourceRPM         = errors.New("no source RPM produced")
)
