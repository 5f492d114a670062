package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/cruciblehq/rpmlb/internal/command"
	"github.com/cruciblehq/rpmlb/internal/pipeline"
	"github.com/cruciblehq/rpmlb/internal/recipe"
	"github.com/cruciblehq/rpmlb/internal/runtime"
	"github.com/cruciblehq/rpmlb/internal/specfile"
	"github.com/cruciblehq/rpmlb/internal/work"
)

const (

	// Directory inside the build container holding package directories.
	containerBuildDir = "/build"

	// Containerd ID of the build container.
	containerID = "rpmlb-build"

	// Host directory, relative to the package directory, receiving results.
	resultsDir = "results"
)

// Result directories copied back from the build container.
var resultDirs = []string{"RPMS", "SRPMS"}

// The operations the container builder needs from a build container.
type buildContainer interface {
	fileTransfer
	EnsureRunning(ctx context.Context) error
	MkdirAll(ctx context.Context, dir string) error
	RemoveAll(ctx context.Context, p string) error
	Exec(ctx context.Context, cmdline string, env []string, workdir string) (*runtime.ExecResult, error)
	Destroy(ctx context.Context)
}

// Starts a build container and returns it with the resource to close once
// the container has been destroyed.
type starter func(ctx context.Context, opts pipeline.Options) (buildContainer, io.Closer, error)

// Builds packages with rpmbuild inside a containerd build container.
//
// One container is started from the ContainerImage archive in Before and
// destroyed in After. Each package directory is copied to
// /build/<name> inside it, built with "rpmbuild -ba", and the RPMS and
// SRPMS directories are copied back to ./results.
type Container struct {
	start  starter        // Starts the build container.
	ctr    buildContainer // Running build container, set by Before.
	closer io.Closer      // Runtime connection, closed by After.
}

// Creates a container builder backed by containerd.
func NewContainer() *Container {
	return &Container{start: startRuntime}
}

func startRuntime(ctx context.Context, opts pipeline.Options) (buildContainer, io.Closer, error) {
	archive, err := filepath.Abs(opts.ContainerImage)
	if err != nil {
		return nil, nil, err
	}

	rt, err := runtime.New(opts.ContainerdAddress, opts.ContainerdNamespace, opts.Log())
	if err != nil {
		return nil, nil, err
	}

	ctr, err := rt.Start(ctx, archive, containerID)
	if err != nil {
		rt.Close()
		return nil, nil, err
	}
	return ctr, rt, nil
}

func (*Container) Name() string {
	return "container"
}

func (b *Container) Before(ctx context.Context, s *work.Session, opts pipeline.Options) error {
	if err := pipeline.Require("container-image", opts.ContainerImage); err != nil {
		return err
	}

	opts.Log().Info("starting build container", "image", opts.ContainerImage)
	ctr, closer, err := b.start(ctx, opts)
	if err != nil {
		return err
	}
	b.ctr, b.closer = ctr, closer

	return ctr.MkdirAll(ctx, containerBuildDir)
}

func (b *Container) Build(ctx context.Context, pkg recipe.Package, opts pipeline.Options) error {
	if b.ctr == nil {
		return fmt.Errorf("%w: build container not started", ErrBuild)
	}
	if err := b.ctr.EnsureRunning(ctx); err != nil {
		return err
	}

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}
	spec, err := specfile.Find(dir)
	if err != nil {
		return err
	}

	topdir := path.Join(containerBuildDir, pkg.Name)
	state := newBuildState(topdir).resolve(pkg)
	if err := state.edit(spec); err != nil {
		return fmt.Errorf("%w: edit %s: %w", ErrFileSystemOperation, spec, err)
	}

	if err := b.ctr.RemoveAll(ctx, topdir); err != nil {
		return err
	}
	if err := copyDirIn(ctx, b.ctr, dir, containerBuildDir, pkg.Name); err != nil {
		return err
	}

	cmdline := state.rpmbuild("-ba", filepath.Base(spec))
	opts.Log().Info("container build", "package", pkg.String(), "dir", topdir)

	result, err := b.ctr.Exec(ctx, cmdline, nil, topdir)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return &command.ExternalCommandError{
			Cmd:      cmdline,
			Dir:      topdir,
			ExitCode: result.ExitCode,
			Stdout:   result.Stdout,
			Stderr:   result.Stderr,
		}
	}

	for _, name := range resultDirs {
		if err := copyOut(ctx, b.ctr, path.Join(topdir, name), resultsDir); err != nil {
			return err
		}
	}
	return nil
}

func (b *Container) After(ctx context.Context, s *work.Session, opts pipeline.Options) error {
	if b.ctr == nil {
		return nil
	}
	b.ctr.Destroy(ctx)
	b.ctr = nil

	if b.closer == nil {
		return nil
	}
	err := b.closer.Close()
	b.closer = nil
	return err
}
