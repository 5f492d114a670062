package cli

import (
	"fmt"

	"github.com/cruciblehq/rpmlb/internal"
)

// Represents the 'rpmlb version' command.
type VersionCmd struct{}

// Executes the version command.
func (c *VersionCmd) Run(out *Output) error {
	_, err := fmt.Fprintln(out.Out, internal.VersionString())
	return err
}
