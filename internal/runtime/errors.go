package runtime

import "errors"

var (
	ErrRuntime        = errors.New("runtime error")
	ErrEmptyArchive   = errors.New("image archive contains no image")
	ErrMultipleImages = errors.New("image archive contains more than one image")
	ErrNotRunning     = errors.New("container is not running")
)
