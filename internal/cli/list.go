package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// Represents the 'rpmlb list' command.
type ListCmd struct {
	RecipeFile string `arg:"" type:"existingfile" help:"Recipe file."`
	RecipeName string `arg:"" help:"Collection in the recipe file."`
}

// Executes the list command.
//
// Prints one line per build step: the numbered directory name, the package
// and its annotations.
func (c *ListCmd) Run(out *Output) error {
	pkgs, err := loadPackages(c.RecipeFile, c.RecipeName)
	if err != nil {
		return err
	}

	width := len(strconv.Itoa(len(pkgs)))
	for i, pkg := range pkgs {
		line := fmt.Sprintf("%0*d %s", width, i+1, pkg.String())

		var notes []string
		if pkg.Dist != "" {
			notes = append(notes, "dist="+pkg.Dist)
		}
		if len(pkg.Cmd) > 0 {
			notes = append(notes, "cmd")
		}
		if len(notes) > 0 {
			line += " [" + strings.Join(notes, " ") + "]"
		}

		if _, err := fmt.Fprintln(out.Out, line); err != nil {
			return err
		}
	}
	return nil
}
