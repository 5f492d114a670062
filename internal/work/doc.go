// Package work manages the numbered working-directory tree of a build.
//
// A [Session] owns a root directory with one numbered subdirectory per
// package step, zero-padded to the width of the package count:
//
//	<root>/01/
//	<root>/02/rubygem-rack/
//	...
//	<root>/12/
//
// Steps are visited with a [Cursor]. Advancing the cursor changes the
// process working directory into the next numbered directory (and, for
// package cursors, into the package checkout below it); the previous
// directories are restored in reverse order before each advance and when
// the cursor is closed. Cursors must always be closed, typically with
// defer, so the working directory is restored on every exit path.
//
// An explicit root is created if missing and reused as is, which lets a
// later run resume from a partially completed tree. Without one, the
// session creates an ephemeral root that [Session.Close] removes.
//
// Example usage:
//
//	s, err := work.Open(packages, work.Options{Root: dir})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	err = s.Each(func(step work.Step) error {
//	    slog.Info("in", "dir", step.Dir, "package", step.Package.Name)
//	    return nil
//	})
package work
