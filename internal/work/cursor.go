package work

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/cruciblehq/rpmlb/internal/paths"
	"github.com/cruciblehq/rpmlb/internal/recipe"
)

// A single step of a session, as seen from inside its directory.
type Step struct {
	Index   int            // 1-based step counter.
	Label   string         // Zero-padded numbered directory name.
	Package recipe.Package // Package of this step.
	Dir     string         // Directory the cursor entered for this step.
}

// Iterates over the steps of a session, changing the working directory.
//
// Each call to [Cursor.Next] first leaves the directories entered for the
// previous step, in reverse order, then enters the directories of the next
// step. The state of the cursor (counter and directory stack) is updated
// only when both succeed. [Cursor.Close] leaves any entered directories and
// must be called on every exit path.
type Cursor struct {
	session *Session       // Session being iterated.
	descend bool           // Whether every step enters the package directory.
	next    int            // Index into session.packages of the next step.
	step    Step           // Current step.
	stack   []func() error // Pending popd functions, innermost last.
	inside  bool           // Whether the package directory of the current step was entered.
	err     error          // First error encountered.
	closed  bool           // Whether Close has been called.
}

func newCursor(s *Session, descend bool) *Cursor {
	return &Cursor{session: s, descend: descend}
}

// Advances to the next step.
//
// Returns false when the steps are exhausted, the cursor is closed, or an
// error occurred; [Cursor.Err] distinguishes the cases. The numbered
// directory of the step is created if missing.
func (c *Cursor) Next() bool {
	if c.closed || c.err != nil {
		return false
	}
	if err := c.unwind(); err != nil {
		c.err = err
		return false
	}
	if c.next >= len(c.session.packages) {
		return false
	}

	n := c.next + 1
	pkg := c.session.packages[c.next]
	dir := c.session.Dir(n)

	if err := os.MkdirAll(dir, paths.DefaultDirMode); err != nil {
		c.err = err
		return false
	}
	if err := c.push(dir); err != nil {
		c.err = err
		return false
	}

	c.next++
	c.inside = false
	c.step = Step{
		Index:   n,
		Label:   c.session.Label(n),
		Package: pkg,
		Dir:     dir,
	}

	if c.descend {
		if err := c.Descend(); err != nil {
			return false
		}
	}

	c.session.logger.Debug("entered step", "label", c.step.Label, "package", pkg.Name)
	return true
}

// Enters the package directory of the current step.
//
// The directory is not created. It is left again on the next advance or on
// close, after which the numbered directory is left as well.
func (c *Cursor) Descend() error {
	if c.closed {
		return ErrCursorClosed
	}
	if c.err != nil {
		return c.err
	}
	if len(c.stack) == 0 {
		return ErrNoStep
	}
	if c.inside {
		return nil
	}
	dir := filepath.Join(c.step.Dir, c.step.Package.Name)
	if err := c.push(dir); err != nil {
		c.err = errors.Join(err, c.unwind())
		return c.err
	}
	c.step.Dir = dir
	c.inside = true
	return nil
}

// Returns the current step.
func (c *Cursor) Step() Step {
	return c.step
}

// Returns the first error encountered while advancing.
func (c *Cursor) Err() error {
	return c.err
}

// Leaves every directory entered by the cursor.
//
// Close is idempotent. After Close, Next returns false.
func (c *Cursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.unwind()
}

func (c *Cursor) push(dir string) error {
	popd, err := Pushd(dir)
	if err != nil {
		return err
	}
	c.stack = append(c.stack, popd)
	return nil
}

// Pops the directory stack in reverse order, stopping at the first error.
func (c *Cursor) unwind() error {
	for len(c.stack) > 0 {
		last := len(c.stack) - 1
		popd := c.stack[last]
		c.stack = c.stack[:last]
		if err := popd(); err != nil {
			c.stack = nil
			return err
		}
	}
	return nil
}
