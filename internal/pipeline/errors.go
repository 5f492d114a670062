package pipeline

import "errors"

var (
	ErrPhase         = errors.New("phase failed")
	ErrMissingOption = errors.New("missing required option")
	ErrInvalidResume = errors.New("resume position must not be negative")
	ErrNoDownloader  = errors.New("downloader is required")
	ErrNoBuilder     = errors.New("builder is required")
)
