package build

import (
	"context"
	"fmt"

	"github.com/cruciblehq/rpmlb/internal/command"
	"github.com/cruciblehq/rpmlb/internal/pipeline"
	"github.com/cruciblehq/rpmlb/internal/recipe"
)

// Rebuilds source RPMs with mock.
type Mock struct {
	hooks
}

func (*Mock) Name() string {
	return "mock"
}

func (*Mock) Build(ctx context.Context, pkg recipe.Package, opts pipeline.Options) error {
	if err := pipeline.Require("mock-config", opts.MockConfig); err != nil {
		return err
	}

	srpm, err := buildSRPM(ctx, pkg, opts)
	if err != nil {
		return err
	}

	opts.Log().Info("mock build", "package", pkg.String(), "config", opts.MockConfig)
	cmdline := fmt.Sprintf("mock -r %s --rebuild %s", command.Quote(opts.MockConfig), command.Quote(srpm))
	_, err = opts.Runner().Run(ctx, cmdline, nil)
	return err
}

// Submits source RPMs to a Copr repository.
type Copr struct {
	hooks
}

func (*Copr) Name() string {
	return "copr"
}

func (*Copr) Build(ctx context.Context, pkg recipe.Package, opts pipeline.Options) error {
	if err := pipeline.Require("copr-repo", opts.CoprRepo); err != nil {
		return err
	}

	srpm, err := buildSRPM(ctx, pkg, opts)
	if err != nil {
		return err
	}

	opts.Log().Info("copr build", "package", pkg.String(), "repo", opts.CoprRepo)
	cmdline := fmt.Sprintf("copr-cli build %s %s", command.Quote(opts.CoprRepo), command.Quote(srpm))
	_, err = opts.Runner().Run(ctx, cmdline, nil)
	return err
}
