package download

import (
	"context"
	"fmt"

	"github.com/cruciblehq/rpmlb/internal/command"
	"github.com/cruciblehq/rpmlb/internal/pipeline"
	"github.com/cruciblehq/rpmlb/internal/recipe"
)

// Checks packages out of a dist-git with an rpkg client.
//
// Each package is cloned with "<tool> co <name>" and switched to the
// configured branch.
type Rpkg struct {
	hooks
	tool string // Client command, such as rhpkg or fedpkg.
}

// Creates a downloader using the given rpkg client.
func NewRpkg(tool string) *Rpkg {
	return &Rpkg{tool: tool}
}

func (d *Rpkg) Name() string {
	return d.tool
}

func (d *Rpkg) Download(ctx context.Context, pkg recipe.Package, opts pipeline.Options) error {
	if err := pipeline.Require("branch", opts.Branch); err != nil {
		return err
	}

	opts.Log().Info("checking out package", "package", pkg.Name, "tool", d.tool, "branch", opts.Branch)

	_, err := opts.Runner().Run(ctx, d.command(pkg.Name, opts.Branch), nil)
	return err
}

func (d *Rpkg) command(name, branch string) string {
	name, branch = command.Quote(name), command.Quote(branch)
	return fmt.Sprintf("%s co %s && cd %s && git checkout %s", d.tool, name, name, branch)
}
