package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/cruciblehq/rpmlb/internal/command"
)

// Options shared by both phases and every backend.
type Options struct {
	Resume              int             // 1-based build position to resume from. Zero runs everything.
	Dist                string          // Target distribution matched against package dist patterns.
	Branch              string          // Git branch for the rhpkg and fedpkg downloaders.
	SourceDirectory     string          // Package source directory for the local downloader.
	CustomFile          string          // Custom file for the custom downloader and builder.
	MockConfig          string          // Mock configuration for the mock builder.
	CoprRepo            string          // Target Copr repository for the copr builder.
	ContainerImage      string          // OCI image archive for the container builder.
	ContainerdAddress   string          // containerd socket address for the container builder.
	ContainerdNamespace string          // containerd namespace for the container builder.
	Logger              *slog.Logger    // Logger for phase and backend events. Nil discards.
	Commands            *command.Runner // Runner for external commands. Nil uses a runner logging to Logger.
}

// Returns the logger, or a discarding logger when none is set.
func (o Options) Log() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Returns the command runner, or a default runner logging to [Options.Log].
func (o Options) Runner() *command.Runner {
	if o.Commands != nil {
		return o.Commands
	}
	return &command.Runner{Logger: o.Log()}
}

// Returns an error wrapping [ErrMissingOption] when value is empty.
func Require(option, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingOption, option)
	}
	return nil
}
