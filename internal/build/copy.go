package build

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/cruciblehq/rpmlb/internal/paths"
)

// The subset of a build container used to move files in and out.
type fileTransfer interface {
	CopyTo(ctx context.Context, r io.Reader, destDir string) error
	CopyFrom(ctx context.Context, w io.Writer, p string) error
}

// Copies the host directory src into the container as destDir/name.
func copyDirIn(ctx context.Context, ctr fileTransfer, src, destDir, name string) error {
	pr, pw := io.Pipe()

	go func() {
		tw := tar.NewWriter(pw)
		err := writeDirToTar(tw, src, name)
		if cerr := tw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	if err := ctr.CopyTo(ctx, pr, destDir); err != nil {
		pr.CloseWithError(err)
		return fmt.Errorf("%w: %s: %w", ErrCopy, src, err)
	}
	return nil
}

// Copies the container path p into the host directory dest.
//
// The archive produced by the container is rooted at the base name of p,
// so /build/foo/RPMS lands in dest/RPMS.
func copyOut(ctx context.Context, ctr fileTransfer, p, dest string) error {
	pr, pw := io.Pipe()

	errc := make(chan error, 1)
	go func() {
		err := ctr.CopyFrom(ctx, pw, p)
		pw.CloseWithError(err)
		errc <- err
	}()

	if err := extractTar(pr, dest); err != nil {
		pr.CloseWithError(err)
		<-errc
		return fmt.Errorf("%w: %s: %w", ErrCopy, p, err)
	}

	// tar pads archives past the end-of-archive marker.
	io.Copy(io.Discard, pr)

	if err := <-errc; err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCopy, p, err)
	}
	return nil
}

// Writes a directory tree to a tar writer rooted at the given archive prefix.
func writeDirToTar(tw *tar.Writer, hostDir, prefix string) error {
	return filepath.WalkDir(hostDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(hostDir, p)
		if err != nil {
			return err
		}

		archivePath := path.Join(prefix, filepath.ToSlash(relPath))
		return writeTarEntry(tw, p, archivePath, d)
	})
}

// Writes a single file, directory or symlink entry to a tar writer.
func writeTarEntry(tw *tar.Writer, hostPath, archivePath string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	var link string
	if info.Mode()&fs.ModeSymlink != 0 {
		if link, err = os.Readlink(hostPath); err != nil {
			return err
		}
	}

	header, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	header.Name = archivePath
	if info.IsDir() {
		header.Name += "/"
	}

	if err := tw.WriteHeader(header); err != nil {
		return err
	}

	if info.Mode().IsRegular() {
		f, err := os.Open(hostPath)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	}

	return nil
}

// Extracts a tar stream into dest, creating it if missing.
//
// Entry names are confined to dest. Only directories, regular files and
// symlinks are extracted.
func extractTar(r io.Reader, dest string) error {
	if err := os.MkdirAll(dest, paths.DefaultDirMode); err != nil {
		return err
	}

	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		target := extractPath(dest, header.Name)

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, paths.DefaultDirMode); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := extractFile(tr, target, header.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), paths.DefaultDirMode); err != nil {
				return err
			}
			if err := os.Symlink(header.Linkname, target); err != nil {
				return err
			}
		}
	}
}

// Resolves an archive entry name below dest. Leading ".." elements are
// dropped by cleaning the name as an absolute path.
func extractPath(dest, name string) string {
	return filepath.Join(dest, filepath.FromSlash(path.Clean("/"+name)))
}

func extractFile(r io.Reader, target string, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), paths.DefaultDirMode); err != nil {
		return err
	}
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
