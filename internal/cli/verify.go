package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cruciblehq/rpmlb/internal/recipe"
)

// Represents the 'rpmlb verify' command.
type VerifyCmd struct {
	RecipeFile string `arg:"" type:"existingfile" help:"Recipe file."`
	RecipeName string `arg:"" help:"Collection in the recipe file."`
}

// Executes the verify command.
//
// Every violation is printed, one per line. The command fails when any was
// found.
func (c *VerifyCmd) Run(logger *slog.Logger, out *Output) error {
	r, err := recipe.Load(c.RecipeFile, c.RecipeName)
	if err != nil {
		return err
	}

	err = r.Validate()
	var rerr *recipe.RecipeError
	if errors.As(err, &rerr) {
		for _, v := range rerr.Violations {
			fmt.Fprintln(out.Out, v.String())
		}
		return fmt.Errorf("%w: %s: %d problems", recipe.ErrMalformedFile, c.RecipeName, len(rerr.Violations))
	}
	if err != nil {
		return err
	}

	logger.Info("recipe is valid", "collection", c.RecipeName, "packages", r.PackageCount())
	_, err = fmt.Fprintf(out.Out, "%s: OK\n", c.RecipeName)
	return err
}
