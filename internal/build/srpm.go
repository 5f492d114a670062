package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cruciblehq/rpmlb/internal/pipeline"
	"github.com/cruciblehq/rpmlb/internal/recipe"
	"github.com/cruciblehq/rpmlb/internal/specfile"
)

// Builds a source RPM in the current package directory and returns its path.
func buildSRPM(ctx context.Context, pkg recipe.Package, opts pipeline.Options) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	spec, err := specfile.Find(dir)
	if err != nil {
		return "", err
	}

	state := newBuildState(dir).resolve(pkg)
	if err := state.edit(spec); err != nil {
		return "", fmt.Errorf("%w: edit %s: %w", ErrFileSystemOperation, spec, err)
	}

	opts.Log().Info("building source RPM", "package", pkg.String(), "spec", filepath.Base(spec))
	if _, err := opts.Runner().Run(ctx, state.rpmbuild("-bs", filepath.Base(spec)), nil); err != nil {
		return "", err
	}

	return findSRPM(state.defines["_srcrpmdir"])
}

// Returns the single source RPM in dir.
func findSRPM(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.src.rpm"))
	if err != nil {
		return "", err
	}
	if len(matches) != 1 {
		return "", fmt.Errorf("%w: %d source RPMs in %s", ErrNoSourceRPM, len(matches), dir)
	}
	return matches[0], nil
}
