package work

import (
	"os"
	"path/filepath"
)

// Changes the working directory to dir, like the shell's pushd.
//
// Relative paths are resolved against the current directory. The returned
// popd function changes back to the directory that was current before the
// call. Filesystem errors are returned unwrapped.
func Pushd(dir string) (popd func() error, err error) {
	prev, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	target := dir
	if !filepath.IsAbs(target) {
		target = filepath.Join(prev, dir)
	}

	if err := os.Chdir(target); err != nil {
		return nil, err
	}

	return func() error {
		return os.Chdir(prev)
	}, nil
}
