package download

import (
	"context"

	"github.com/cruciblehq/rpmlb/internal/custom"
	"github.com/cruciblehq/rpmlb/internal/pipeline"
	"github.com/cruciblehq/rpmlb/internal/recipe"
	"github.com/cruciblehq/rpmlb/internal/work"
)

// Runs the download hooks of a custom file.
//
// before_download runs once before the first package, download once per
// package inside its numbered directory, and after_download once at the end.
type Custom struct {
	file *custom.File // Custom file, opened on first use.
}

func (*Custom) Name() string {
	return "custom"
}

func (d *Custom) Before(ctx context.Context, s *work.Session, opts pipeline.Options) error {
	f, err := d.open(opts)
	if err != nil {
		return err
	}
	return f.Run(ctx, opts.Runner(), custom.BeforeDownload, "")
}

func (d *Custom) Download(ctx context.Context, pkg recipe.Package, opts pipeline.Options) error {
	f, err := d.open(opts)
	if err != nil {
		return err
	}
	return f.Run(ctx, opts.Runner(), custom.Download, pkg.Name)
}

func (d *Custom) After(ctx context.Context, s *work.Session, opts pipeline.Options) error {
	f, err := d.open(opts)
	if err != nil {
		return err
	}
	return f.Run(ctx, opts.Runner(), custom.AfterDownload, "")
}

func (d *Custom) open(opts pipeline.Options) (*custom.File, error) {
	if d.file != nil {
		return d.file, nil
	}
	f, err := custom.Open(opts.CustomFile)
	if err != nil {
		return nil, err
	}
	d.file = f
	return f, nil
}
