package build

import (
	"archive/tar"
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/cruciblehq/rpmlb/internal/command"
	"github.com/cruciblehq/rpmlb/internal/pipeline"
	"github.com/cruciblehq/rpmlb/internal/recipe"
	"github.com/cruciblehq/rpmlb/internal/runtime"
	"github.com/stretchr/testify/require"
)

// A build container whose filesystem is a host directory.
type fakeContainer struct {
	root      string
	execs     []string
	exitCode  int
	destroyed bool
	running   bool
}

func (f *fakeContainer) host(p string) string {
	return filepath.Join(f.root, filepath.FromSlash(p))
}

func (f *fakeContainer) EnsureRunning(ctx context.Context) error {
	if !f.running {
		return runtime.ErrNotRunning
	}
	return nil
}

func (f *fakeContainer) MkdirAll(ctx context.Context, dir string) error {
	return os.MkdirAll(f.host(dir), 0o755)
}

func (f *fakeContainer) RemoveAll(ctx context.Context, p string) error {
	return os.RemoveAll(f.host(p))
}

func (f *fakeContainer) CopyTo(ctx context.Context, r io.Reader, destDir string) error {
	return extractTar(r, f.host(destDir))
}

func (f *fakeContainer) CopyFrom(ctx context.Context, w io.Writer, p string) error {
	tw := tar.NewWriter(w)
	if err := writeDirToTar(tw, f.host(p), path.Base(p)); err != nil {
		return err
	}
	return tw.Close()
}

func (f *fakeContainer) Exec(ctx context.Context, cmdline string, env []string, workdir string) (*runtime.ExecResult, error) {
	f.execs = append(f.execs, workdir+": "+cmdline)
	if f.exitCode != 0 {
		return &runtime.ExecResult{ExitCode: f.exitCode, Stderr: "error: Bad exit status"}, nil
	}
	dir := f.host(workdir)
	for _, p := range []string{"RPMS/x86_64/foo-1.0-1.x86_64.rpm", "SRPMS/foo-1.0-1.src.rpm"} {
		target := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(target, []byte(p), 0o644); err != nil {
			return nil, err
		}
	}
	return &runtime.ExecResult{}, nil
}

func (f *fakeContainer) Destroy(ctx context.Context) {
	f.destroyed = true
}

type fakeCloser struct{ closed bool }

func (c *fakeCloser) Close() error {
	c.closed = true
	return nil
}

func newFakeBuilder(t *testing.T, ctr *fakeContainer) (*Container, *fakeCloser) {
	t.Helper()
	closer := &fakeCloser{}
	b := &Container{start: func(ctx context.Context, opts pipeline.Options) (buildContainer, io.Closer, error) {
		return ctr, closer, nil
	}}
	return b, closer
}

func TestContainerBuild(t *testing.T) {
	ctx := context.Background()
	ctr := &fakeContainer{root: t.TempDir(), running: true}
	b, closer := newFakeBuilder(t, ctr)
	opts := pipeline.Options{ContainerImage: "rpmbuild.tar"}

	require.NoError(t, b.Before(ctx, nil, opts))
	require.DirExists(t, ctr.host("/build"))

	dir := packageDir(t, "foo")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foo-1.0.tar.gz"), []byte("sources"), 0o644))

	pkg := recipe.Package{Name: "foo"}
	pkg.Macros = map[string]string{"scl": "rh-ror50"}
	require.NoError(t, b.Build(ctx, pkg, opts))

	// The edited package directory was copied into the container.
	spec, err := os.ReadFile(ctr.host("/build/foo/foo.spec"))
	require.NoError(t, err)
	require.Equal(t, "%global scl rh-ror50\nName: foo\n", string(spec))
	require.FileExists(t, ctr.host("/build/foo/foo-1.0.tar.gz"))

	require.Len(t, ctr.execs, 1)
	require.Contains(t, ctr.execs[0], "/build/foo: rpmbuild -ba ")
	require.Contains(t, ctr.execs[0], "'_topdir /build/foo'")

	require.FileExists(t, filepath.Join(dir, "results", "RPMS", "x86_64", "foo-1.0-1.x86_64.rpm"))
	require.FileExists(t, filepath.Join(dir, "results", "SRPMS", "foo-1.0-1.src.rpm"))

	require.NoError(t, b.After(ctx, nil, opts))
	require.True(t, ctr.destroyed)
	require.True(t, closer.closed)

	// After is idempotent.
	require.NoError(t, b.After(ctx, nil, opts))
}

func TestContainerBuildFailure(t *testing.T) {
	ctx := context.Background()
	ctr := &fakeContainer{root: t.TempDir(), running: true, exitCode: 1}
	b, _ := newFakeBuilder(t, ctr)
	opts := pipeline.Options{ContainerImage: "rpmbuild.tar"}

	require.NoError(t, b.Before(ctx, nil, opts))
	packageDir(t, "foo")

	err := b.Build(ctx, recipe.Package{Name: "foo"}, opts)
	require.ErrorIs(t, err, command.ErrCommandFailed)

	var cerr *command.ExternalCommandError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, 1, cerr.ExitCode)
	require.Equal(t, "/build/foo", cerr.Dir)
}

func TestContainerNotRunning(t *testing.T) {
	ctx := context.Background()
	ctr := &fakeContainer{root: t.TempDir()}
	b, _ := newFakeBuilder(t, ctr)
	opts := pipeline.Options{ContainerImage: "rpmbuild.tar"}

	require.NoError(t, b.Before(ctx, nil, opts))
	packageDir(t, "foo")

	require.ErrorIs(t, b.Build(ctx, recipe.Package{Name: "foo"}, opts), runtime.ErrNotRunning)
}

func TestContainerBuildBeforeStart(t *testing.T) {
	require.ErrorIs(t, NewContainer().Build(context.Background(), recipe.Package{Name: "foo"}, pipeline.Options{}), ErrBuild)
}
