package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

const (

	// Shell used to interpret command lines.
	Shell = "/bin/sh"

	// Locale forced on commands so their output can be parsed in English.
	locale = "en_US.utf-8"
)

// Output of a successful command.
type Result struct {
	Cmd    string // Command line passed to the shell.
	Stdout string // Captured standard output.
	Stderr string // Captured standard error.
}

// Runs shell commands in the current working directory.
//
// The zero value is usable and discards logs.
type Runner struct {
	Env    map[string]string // Variables added to every command's environment.
	Stdout io.Writer         // Optional copy of standard output as it is produced.
	Stderr io.Writer         // Optional copy of standard error as it is produced.
	Logger *slog.Logger      // Logger for command lines and failures.
}

func (r *Runner) logger() *slog.Logger {
	if r == nil || r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// Runs one command line through the shell.
//
// The extra variables override the runner's and the process environment.
// A command that cannot be started or exits non-zero returns an
// [*ExternalCommandError].
func (r *Runner) Run(ctx context.Context, cmdline string, env map[string]string) (*Result, error) {
	log := r.logger()
	dir, _ := os.Getwd()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, Shell, "-c", cmdline)
	cmd.Env = r.environ(env)
	cmd.Stdout = r.tee(&stdout, r.stdout())
	cmd.Stderr = r.tee(&stderr, r.stderr())

	log.Debug("run", "cmd", cmdline, "dir", dir)

	err := cmd.Run()
	if err == nil {
		return &Result{Cmd: cmdline, Stdout: stdout.String(), Stderr: stderr.String()}, nil
	}

	cerr := &ExternalCommandError{
		Cmd:      cmdline,
		Dir:      dir,
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cerr.ExitCode = exitErr.ExitCode()
		cerr.Err = nil
	}

	log.Error("command failed", "cmd", cmdline, "dir", dir, "code", cerr.ExitCode)
	if cerr.Stdout != "" {
		log.Error("stdout", "output", cerr.Stdout)
	}
	if cerr.Stderr != "" {
		log.Error("stderr", "output", cerr.Stderr)
	}
	return nil, cerr
}

// Runs command lines in order, stopping at the first failure.
func (r *Runner) RunAll(ctx context.Context, cmdlines []string, env map[string]string) error {
	for _, cmdline := range cmdlines {
		if _, err := r.Run(ctx, cmdline, env); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) environ(env map[string]string) []string {
	overrides := []string{"LC_ALL=" + locale}
	if r != nil {
		overrides = append(overrides, Environ(r.Env)...)
	}
	overrides = append(overrides, Environ(env)...)
	return MergeEnv(os.Environ(), overrides)
}

func (r *Runner) stdout() io.Writer {
	if r == nil {
		return nil
	}
	return r.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r == nil {
		return nil
	}
	return r.Stderr
}

func (r *Runner) tee(capture *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return capture
	}
	return io.MultiWriter(capture, w)
}
