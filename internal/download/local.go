package download

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cruciblehq/rpmlb/internal/pipeline"
	"github.com/cruciblehq/rpmlb/internal/recipe"
)

// Copies packages from a local source directory.
//
// The source of a package is <SourceDirectory>/<name>. An existing
// destination is replaced.
type Local struct {
	hooks
}

func (*Local) Name() string {
	return "local"
}

func (*Local) Download(ctx context.Context, pkg recipe.Package, opts pipeline.Options) error {
	if err := pipeline.Require("source-directory", opts.SourceDirectory); err != nil {
		return err
	}

	src := filepath.Join(opts.SourceDirectory, pkg.Name)
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrDownload, src)
	}

	opts.Log().Info("copying package", "package", pkg.Name, "src", src)

	if err := os.RemoveAll(pkg.Name); err != nil {
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}
	if err := copyTree(src, pkg.Name); err != nil {
		return fmt.Errorf("%w: copy %s: %w", ErrDownload, src, err)
	}
	return nil
}

// Copies the directory tree at src to dst, preserving modes and symlinks.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm())
		case info.Mode()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case info.Mode().IsRegular():
			return copyFile(path, target, info.Mode().Perm())
		}
		return nil
	})
}

func copyFile(src, dst string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
