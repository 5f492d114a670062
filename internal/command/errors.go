package command

import (
	"errors"
	"fmt"
	"strings"
)

var ErrCommandFailed = errors.New("command failed")

// Reports an external command that could not be started or exited non-zero.
type ExternalCommandError struct {
	Cmd      string // Command line passed to the shell.
	Dir      string // Working directory the command ran in.
	ExitCode int    // Exit code, or -1 when the command did not run.
	Stdout   string // Captured standard output.
	Stderr   string // Captured standard error.
	Err      error  // Underlying error from the process.
}

func (e *ExternalCommandError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "command [%s] failed at [%s]", e.Cmd, e.Dir)
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, " with exit code %d", e.ExitCode)
	} else if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		fmt.Fprintf(&b, ": %s", stderr)
	}
	return b.String()
}

func (e *ExternalCommandError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCommandFailed}
	}
	return []error{ErrCommandFailed, e.Err}
}
