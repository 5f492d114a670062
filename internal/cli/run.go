package cli

import (
	"context"
	"log/slog"

	"github.com/cruciblehq/rpmlb/internal/build"
	"github.com/cruciblehq/rpmlb/internal/command"
	"github.com/cruciblehq/rpmlb/internal/download"
	"github.com/cruciblehq/rpmlb/internal/paths"
	"github.com/cruciblehq/rpmlb/internal/pipeline"
	"github.com/cruciblehq/rpmlb/internal/recipe"
	"github.com/cruciblehq/rpmlb/internal/work"
)

// Represents the 'rpmlb run' command.
type RunCmd struct {
	RecipeFile string `arg:"" type:"existingfile" help:"Recipe file."`
	RecipeName string `arg:"" help:"Collection in the recipe file (such as rh-ror50)."`

	Download      string `short:"D" enum:"${downloaders}" default:"none" help:"Download type (${enum})."`
	Build         string `short:"b" enum:"${builders}" default:"dummy" help:"Build type (${enum})."`
	WorkDirectory string `short:"w" type:"path" placeholder:"DIR" help:"Working directory, kept after the run. A temporary one is used when empty."`
	CustomFile    string `short:"c" type:"existingfile" placeholder:"PATH" help:"Instructions for the custom downloader and builder."`
	Clean         bool   `help:"Remove the temporary working directory after a successful run."`

	Branch          string `short:"B" group:"Download" help:"Git branch for the rhpkg and fedpkg downloaders."`
	SourceDirectory string `short:"S" type:"existingdir" default:"." group:"Download" placeholder:"DIR" help:"Package source directory for the local downloader."`

	Resume              int    `short:"r" group:"Build" placeholder:"N" help:"Resume the build from position N, skipping the download."`
	Dist                string `group:"Build" help:"Target distribution (such as fc26) matched against package dist patterns."`
	MockConfig          string `short:"M" group:"Build" help:"Mock configuration for the mock builder."`
	CoprRepo            string `short:"C" group:"Build" help:"Target Copr repository for the copr builder."`
	ContainerImage      string `type:"existingfile" group:"Build" placeholder:"PATH" help:"OCI image archive for the container builder."`
	ContainerdAddress   string `default:"${containerd_address}" group:"Build" help:"containerd socket address."`
	ContainerdNamespace string `default:"${containerd_namespace}" group:"Build" help:"containerd namespace."`
}

// Executes the run command.
//
// The recipe is validated and normalized before anything is created on
// disk. The download phase runs to completion before the build phase
// starts.
func (c *RunCmd) Run(ctx context.Context, logger *slog.Logger, out *Output) error {
	pkgs, err := loadPackages(c.RecipeFile, c.RecipeName)
	if err != nil {
		return err
	}

	downloader, err := download.New(c.Download)
	if err != nil {
		return err
	}
	builder, err := build.New(c.Build)
	if err != nil {
		return err
	}

	session, err := work.Open(pkgs, work.Options{
		Root:     c.WorkDirectory,
		TempBase: paths.WorkBase(),
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Runner:     &pipeline.Runner{Logger: logger},
		Downloader: downloader,
		Builder:    builder,
	}
	if err := p.Run(ctx, session, c.options(logger, out)); err != nil {
		logger.Error("run failed", "workdir", session.Root())
		return err
	}

	logger.Info("success", "packages", session.Count(), "workdir", session.Root())
	if c.Clean {
		return session.Close()
	}
	return nil
}

func (c *RunCmd) options(logger *slog.Logger, out *Output) pipeline.Options {
	runner := &command.Runner{Logger: logger}
	if out.Echo {
		runner.Stdout = out.Err
		runner.Stderr = out.Err
	}

	return pipeline.Options{
		Resume:              c.Resume,
		Dist:                c.Dist,
		Branch:              c.Branch,
		SourceDirectory:     c.SourceDirectory,
		CustomFile:          c.CustomFile,
		MockConfig:          c.MockConfig,
		CoprRepo:            c.CoprRepo,
		ContainerImage:      c.ContainerImage,
		ContainerdAddress:   c.ContainerdAddress,
		ContainerdNamespace: c.ContainerdNamespace,
		Logger:              logger,
		Commands:            runner,
	}
}

// Loads, validates and normalizes a recipe.
func loadPackages(path, collectionID string) ([]recipe.Package, error) {
	r, err := recipe.Load(path, collectionID)
	if err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r.Normalize()
}
