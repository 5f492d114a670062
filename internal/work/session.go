package work

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cruciblehq/rpmlb/internal/paths"
	"github.com/cruciblehq/rpmlb/internal/recipe"
)

// Prefix of ephemeral root directory names.
const tempPrefix = "rpmlb-"

// Controls how a session's root directory is chosen.
type Options struct {
	Root     string       // Explicit root, created if missing and never removed.
	TempBase string       // Parent directory for an ephemeral root. Empty uses the system temp dir.
	Logger   *slog.Logger // Logger for session events. Nil discards.
}

// The numbered-directory execution context of one pipeline run.
type Session struct {
	root      string           // Absolute path of the root directory.
	width     int              // Digit width of numbered directory names.
	ephemeral bool             // Whether the root was created by the session.
	packages  []recipe.Package // Normalized packages, one per step.
	logger    *slog.Logger     // Logger for session events.
}

// Opens a session for the given normalized packages.
//
// The directory width is the number of digits of len(packages), so 12
// packages use "01".."12" and 150 use "001".."150". Numbered directories
// are created lazily while stepping through the session.
func Open(packages []recipe.Package, opts Options) (*Session, error) {
	if len(packages) == 0 {
		return nil, ErrNoPackages
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Session{
		width:    len(strconv.Itoa(len(packages))),
		packages: packages,
		logger:   logger,
	}

	if opts.Root != "" {
		root, err := filepath.Abs(opts.Root)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWork, err)
		}
		if err := os.MkdirAll(root, paths.DefaultDirMode); err != nil {
			return nil, err
		}
		s.root = root
	} else {
		if opts.TempBase != "" {
			if err := os.MkdirAll(opts.TempBase, paths.DefaultDirMode); err != nil {
				return nil, err
			}
		}
		root, err := os.MkdirTemp(opts.TempBase, tempPrefix)
		if err != nil {
			return nil, err
		}
		if root, err = filepath.Abs(root); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWork, err)
		}
		s.root = root
		s.ephemeral = true
	}

	logger.Info("working directory", "path", s.root, "ephemeral", s.ephemeral, "steps", len(packages))
	return s, nil
}

// Returns the absolute path of the root directory.
func (s *Session) Root() string {
	return s.root
}

// Returns the digit width of numbered directory names.
func (s *Session) Width() int {
	return s.width
}

// Returns whether the root directory is removed by [Session.Close].
func (s *Session) Ephemeral() bool {
	return s.ephemeral
}

// Returns the number of steps, one per normalized package.
func (s *Session) Count() int {
	return len(s.packages)
}

// Returns the normalized packages in step order.
func (s *Session) Packages() []recipe.Package {
	return s.packages
}

// Returns the numbered directory name for a 1-based step counter.
func (s *Session) Label(n int) string {
	return fmt.Sprintf("%0*d", s.width, n)
}

// Returns the absolute path of the numbered directory for step n.
func (s *Session) Dir(n int) string {
	return filepath.Join(s.root, s.Label(n))
}

// Returns a cursor over the numbered directories.
func (s *Session) NumberedSteps() *Cursor {
	return newCursor(s, false)
}

// Returns a cursor over the package directories.
//
// Like [Session.NumberedSteps], but each step additionally enters the
// directory named after the package inside the numbered directory. That
// directory is not created by the session; it is expected to have been
// materialized by a downloader.
func (s *Session) PackageSteps() *Cursor {
	return newCursor(s, true)
}

// Calls fn once per numbered step, inside the step's numbered directory.
//
// Iteration stops at the first error, which is returned. The working
// directory is restored before returning, including when fn panics.
func (s *Session) Each(fn func(Step) error) error {
	return each(s.NumberedSteps(), fn)
}

// Calls fn once per package step, inside the step's package directory.
func (s *Session) EachPackage(fn func(Step) error) error {
	return each(s.PackageSteps(), fn)
}

func each(c *Cursor, fn func(Step) error) error {
	defer c.Close()

	for c.Next() {
		if err := fn(c.Step()); err != nil {
			return err
		}
	}
	if err := c.Err(); err != nil {
		return err
	}
	return c.Close()
}

// Releases the session.
//
// An ephemeral root is removed with everything below it. An explicit root
// is left untouched so a later run can resume from it.
func (s *Session) Close() error {
	if !s.ephemeral {
		return nil
	}
	s.logger.Debug("removing working directory", "path", s.root)
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("%w: %w", ErrWork, err)
	}
	return nil
}
