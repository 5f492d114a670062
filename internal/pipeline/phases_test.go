package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cruciblehq/rpmlb/internal/recipe"
	"github.com/cruciblehq/rpmlb/internal/work"
	"github.com/stretchr/testify/require"
)

type fakeDownloader struct {
	downloaded []string
}

func (d *fakeDownloader) Name() string { return "fake" }

func (d *fakeDownloader) Before(context.Context, *work.Session, Options) error { return nil }

func (d *fakeDownloader) Download(ctx context.Context, pkg recipe.Package, opts Options) error {
	d.downloaded = append(d.downloaded, pkg.Name)
	return os.MkdirAll(pkg.Name, 0o755)
}

func (d *fakeDownloader) After(context.Context, *work.Session, Options) error { return nil }

type fakeBuilder struct {
	built []string
}

func (b *fakeBuilder) Name() string { return "fake" }

func (b *fakeBuilder) Before(context.Context, *work.Session, Options) error { return nil }

func (b *fakeBuilder) Build(ctx context.Context, pkg recipe.Package, opts Options) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	b.built = append(b.built, filepath.Base(wd))
	return nil
}

func (b *fakeBuilder) After(context.Context, *work.Session, Options) error { return nil }

func TestPipelineRun(t *testing.T) {
	pkgs := packages("a", "b", "c")
	pkgs[1].Dist = "fc2[56]"
	pkgs[2].Cmd = []string{"touch built-by-cmd"}
	s := openSession(t, pkgs)

	d := &fakeDownloader{}
	b := &fakeBuilder{}
	p := &Pipeline{Runner: &Runner{}, Downloader: d, Builder: b}

	require.NoError(t, p.Run(context.Background(), s, Options{Dist: "el7"}))
	require.Equal(t, []string{"a", "c"}, d.downloaded)
	require.Equal(t, []string{"a"}, b.built)

	// Skipped for dist, but the package directory exists.
	require.DirExists(t, filepath.Join(s.Dir(2), "b"))
	require.FileExists(t, filepath.Join(s.Dir(3), "c", "built-by-cmd"))
}

func TestPipelineResume(t *testing.T) {
	pkgs := packages("a", "b", "c")
	s := openSession(t, pkgs)
	for n, pkg := range pkgs {
		require.NoError(t, os.MkdirAll(filepath.Join(s.Dir(n+1), pkg.Name), 0o755))
	}

	d := &fakeDownloader{}
	b := &fakeBuilder{}
	p := &Pipeline{Runner: &Runner{}, Downloader: d, Builder: b}

	require.NoError(t, p.Run(context.Background(), s, Options{Resume: 2}))
	require.Empty(t, d.downloaded)
	require.Equal(t, []string{"b", "c"}, b.built)
}

func TestPipelineRequiresBackends(t *testing.T) {
	s := openSession(t, packages("a"))
	require.ErrorIs(t, (&Pipeline{Builder: &fakeBuilder{}}).Run(context.Background(), s, Options{}), ErrNoDownloader)
	require.ErrorIs(t, (&Pipeline{Downloader: &fakeDownloader{}}).Run(context.Background(), s, Options{}), ErrNoBuilder)
}

func TestRequire(t *testing.T) {
	require.NoError(t, Require("branch", "master"))
	require.ErrorIs(t, Require("branch", ""), ErrMissingOption)
}
