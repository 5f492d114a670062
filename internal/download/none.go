package download

import (
	"context"

	"github.com/cruciblehq/rpmlb/internal/pipeline"
	"github.com/cruciblehq/rpmlb/internal/recipe"
)

// Downloads nothing. The package directories must already be in place.
type None struct {
	hooks
}

func (*None) Name() string {
	return "none"
}

func (*None) Download(ctx context.Context, pkg recipe.Package, opts pipeline.Options) error {
	opts.Log().Debug("download skipped", "package", pkg.Name)
	return nil
}
