package work

import "errors"

var (
	ErrWork         = errors.New("work directory error")
	ErrNoPackages   = errors.New("no packages to work on")
	ErrCursorClosed = errors.New("cursor is closed")
	ErrNoStep       = errors.New("cursor has no current step")
)
