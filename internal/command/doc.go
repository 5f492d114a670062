// Package command runs external shell commands on behalf of backends.
//
// Commands are passed to /bin/sh -c in the current working directory, with
// the process environment plus LC_ALL=en_US.utf-8 and any caller-supplied
// variables. Output is captured; a command that cannot be started or exits
// non-zero fails with an [*ExternalCommandError] carrying the exit code and
// the captured output. Commands are never retried.
//
// Example usage:
//
//	r := &command.Runner{Logger: logger}
//	if _, err := r.Run(ctx, "fedpkg co ruby", nil); err != nil {
//	    return err
//	}
package command
