package work

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCursorUnwindsInReverseOrder(t *testing.T) {
	t.Chdir(t.TempDir())
	start := cwd(t)

	s := openSession(t, packages("a", "b"))
	if err := os.MkdirAll(filepath.Join(s.Dir(1), "a"), 0o755); err != nil {
		t.Fatal(err)
	}

	c := s.NumberedSteps()
	defer c.Close()

	if !c.Next() {
		t.Fatalf("Next() = false, err = %v", c.Err())
	}
	if err := c.Descend(); err != nil {
		t.Fatalf("descend: %v", err)
	}
	if got, want := cwd(t), realpath(t, filepath.Join(s.Dir(1), "a")); got != want {
		t.Fatalf("cwd = %q, want %q", got, want)
	}
	if err := c.Descend(); err != nil {
		t.Fatalf("second descend: %v", err)
	}

	if !c.Next() {
		t.Fatalf("Next() = false, err = %v", c.Err())
	}
	if got, want := cwd(t), realpath(t, s.Dir(2)); got != want {
		t.Fatalf("cwd = %q, want %q", got, want)
	}
	if c.Step().Index != 2 || c.Step().Label != "2" {
		t.Fatalf("Step() = %+v", c.Step())
	}

	if c.Next() {
		t.Fatal("Next() = true past the last step")
	}
	if c.Err() != nil {
		t.Fatalf("Err() = %v", c.Err())
	}
	if got := cwd(t); got != start {
		t.Fatalf("cwd after exhaustion = %q, want %q", got, start)
	}
}

func TestCursorClose(t *testing.T) {
	t.Chdir(t.TempDir())
	start := cwd(t)

	c := openSession(t, numbered(3)).NumberedSteps()
	if !c.Next() {
		t.Fatalf("Next() = false, err = %v", c.Err())
	}

	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if got := cwd(t); got != start {
		t.Fatalf("cwd after close = %q, want %q", got, start)
	}
	if c.Next() {
		t.Fatal("Next() = true after close")
	}
	if err := c.Descend(); !errors.Is(err, ErrCursorClosed) {
		t.Fatalf("Descend() after close = %v, want ErrCursorClosed", err)
	}
}

func TestCursorDescendWithoutStep(t *testing.T) {
	c := openSession(t, numbered(1)).NumberedSteps()
	defer c.Close()

	if err := c.Descend(); !errors.Is(err, ErrNoStep) {
		t.Fatalf("Descend() = %v, want ErrNoStep", err)
	}
}

func TestPushd(t *testing.T) {
	t.Chdir(t.TempDir())
	start := cwd(t)

	if err := os.Mkdir("sub", 0o755); err != nil {
		t.Fatal(err)
	}
	popd, err := Pushd("sub")
	if err != nil {
		t.Fatalf("pushd: %v", err)
	}
	if got := cwd(t); got != filepath.Join(start, "sub") {
		t.Fatalf("cwd = %q, want %q", got, filepath.Join(start, "sub"))
	}
	if err := popd(); err != nil {
		t.Fatalf("popd: %v", err)
	}
	if got := cwd(t); got != start {
		t.Fatalf("cwd after popd = %q, want %q", got, start)
	}

	if _, err := Pushd("missing"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pushd missing = %v, want os.ErrNotExist", err)
	}
	if got := cwd(t); got != start {
		t.Fatalf("cwd after failed pushd = %q, want %q", got, start)
	}
}

func TestCursorDescendReportsFailedRestore(t *testing.T) {
	start := filepath.Join(t.TempDir(), "start")
	if err := os.Mkdir(start, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(start)

	c := openSession(t, packages("a")).NumberedSteps()
	defer c.Close()

	if !c.Next() {
		t.Fatalf("Next() = false, err = %v", c.Err())
	}
	if err := os.Remove(start); err != nil {
		t.Fatal(err)
	}

	err := c.Descend()
	if err == nil {
		t.Fatal("Descend() into a missing package directory succeeded")
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok || len(joined.Unwrap()) != 2 {
		t.Fatalf("Descend() = %v, want the descend and restore errors", err)
	}
	if !errors.Is(c.Err(), os.ErrNotExist) {
		t.Fatalf("Err() = %v, want os.ErrNotExist", c.Err())
	}
}
