package pipeline

import (
	"context"
	"os"

	"github.com/cruciblehq/rpmlb/internal/paths"
	"github.com/cruciblehq/rpmlb/internal/recipe"
	"github.com/cruciblehq/rpmlb/internal/work"
)

// Materializes package directories.
//
// Download runs inside the package's numbered directory and must leave a
// directory named after the package there.
type Downloader interface {
	Name() string
	Before(ctx context.Context, s *work.Session, opts Options) error
	Download(ctx context.Context, pkg recipe.Package, opts Options) error
	After(ctx context.Context, s *work.Session, opts Options) error
}

// Builds packages from their package directory.
//
// Build runs inside the package directory.
type Builder interface {
	Name() string
	Before(ctx context.Context, s *work.Session, opts Options) error
	Build(ctx context.Context, pkg recipe.Package, opts Options) error
	After(ctx context.Context, s *work.Session, opts Options) error
}

// Download then build.
type Pipeline struct {
	Runner     *Runner    // Phase runner.
	Downloader Downloader // Download backend.
	Builder    Builder    // Build backend.
}

// Runs the download phase followed by the build phase.
func (p *Pipeline) Run(ctx context.Context, s *work.Session, opts Options) error {
	if p.Downloader == nil {
		return ErrNoDownloader
	}
	if p.Builder == nil {
		return ErrNoBuilder
	}

	log := opts.Log()

	log.Info("downloading", "downloader", p.Downloader.Name())
	if err := p.Runner.Run(ctx, s, DownloadPhase(p.Downloader), ResumeBypass, opts); err != nil {
		return err
	}

	log.Info("building", "builder", p.Builder.Name())
	return p.Runner.Run(ctx, s, BuildPhase(p.Builder), ResumeFromPosition, opts)
}

// Returns the download phase backed by d.
//
// Packages skipped for their distribution get an empty package directory
// so the build phase can still enter it.
func DownloadPhase(d Downloader) Phase {
	return downloadPhase{d}
}

// Returns the build phase backed by b.
//
// A package with commands runs them in place of the builder's build.
func BuildPhase(b Builder) Phase {
	return buildPhase{b}
}

type downloadPhase struct {
	d Downloader
}

func (p downloadPhase) Name() string {
	return "download"
}

func (p downloadPhase) Before(ctx context.Context, s *work.Session, opts Options) error {
	return p.d.Before(ctx, s, opts)
}

func (p downloadPhase) Process(ctx context.Context, pkg recipe.Package, opts Options) error {
	return p.d.Download(ctx, pkg, opts)
}

func (p downloadPhase) After(ctx context.Context, s *work.Session, opts Options) error {
	return p.d.After(ctx, s, opts)
}

func (p downloadPhase) Skip(ctx context.Context, pkg recipe.Package, opts Options) error {
	return os.MkdirAll(pkg.Name, paths.DefaultDirMode)
}

type buildPhase struct {
	b Builder
}

func (p buildPhase) Name() string {
	return "build"
}

func (p buildPhase) PackageScoped() bool {
	return true
}

func (p buildPhase) Before(ctx context.Context, s *work.Session, opts Options) error {
	return p.b.Before(ctx, s, opts)
}

func (p buildPhase) Process(ctx context.Context, pkg recipe.Package, opts Options) error {
	if len(pkg.Cmd) > 0 {
		opts.Log().Info("running package commands", "package", pkg.Name, "count", len(pkg.Cmd))
		return opts.Runner().RunAll(ctx, pkg.Cmd, nil)
	}
	return p.b.Build(ctx, pkg, opts)
}

func (p buildPhase) After(ctx context.Context, s *work.Session, opts Options) error {
	return p.b.After(ctx, s, opts)
}
