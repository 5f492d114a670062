package build

import (
	"context"

	"github.com/cruciblehq/rpmlb/internal/custom"
	"github.com/cruciblehq/rpmlb/internal/pipeline"
	"github.com/cruciblehq/rpmlb/internal/recipe"
	"github.com/cruciblehq/rpmlb/internal/work"
)

// Runs the build hooks of a custom file.
//
// before_build runs once before the first package, build once per package
// inside its package directory, and after_build once at the end.
type Custom struct {
	file *custom.File // Custom file, opened on first use.
}

func (*Custom) Name() string {
	return "custom"
}

func (b *Custom) Before(ctx context.Context, s *work.Session, opts pipeline.Options) error {
	return b.run(ctx, opts, custom.BeforeBuild, "")
}

func (b *Custom) Build(ctx context.Context, pkg recipe.Package, opts pipeline.Options) error {
	return b.run(ctx, opts, custom.Build, pkg.Name)
}

func (b *Custom) After(ctx context.Context, s *work.Session, opts pipeline.Options) error {
	return b.run(ctx, opts, custom.AfterBuild, "")
}

func (b *Custom) run(ctx context.Context, opts pipeline.Options, hook, pkg string) error {
	if b.file == nil {
		f, err := custom.Open(opts.CustomFile)
		if err != nil {
			return err
		}
		b.file = f
	}
	return b.file.Run(ctx, opts.Runner(), hook, pkg)
}
