package build

import (
	"context"

	"github.com/cruciblehq/rpmlb/internal/pipeline"
	"github.com/cruciblehq/rpmlb/internal/recipe"
)

// Logs every package without building it.
type Dummy struct {
	hooks
}

func (*Dummy) Name() string {
	return "dummy"
}

func (*Dummy) Build(ctx context.Context, pkg recipe.Package, opts pipeline.Options) error {
	opts.Log().Info("dummy build", "package", pkg.String())
	return nil
}
