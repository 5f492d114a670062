package download

import (
	"context"

	"github.com/cruciblehq/rpmlb/internal/pipeline"
	"github.com/cruciblehq/rpmlb/internal/work"
)

var registry = pipeline.NewRegistry[pipeline.Downloader](ErrUnknownDownloader)

func init() {
	registry.MustRegister("none", func() pipeline.Downloader { return &None{} })
	registry.MustRegister("local", func() pipeline.Downloader { return &Local{} })
	registry.MustRegister("rhpkg", func() pipeline.Downloader { return NewRpkg("rhpkg") })
	registry.MustRegister("fedpkg", func() pipeline.Downloader { return NewRpkg("fedpkg") })
	registry.MustRegister("custom", func() pipeline.Downloader { return &Custom{} })
}

// Creates the downloader registered under name.
func New(name string) (pipeline.Downloader, error) {
	return registry.New(name)
}

// Returns the names of the available downloaders, sorted.
func Names() []string {
	return registry.Names()
}

// No-op Before and After for downloaders without setup.
type hooks struct{}

func (hooks) Before(context.Context, *work.Session, pipeline.Options) error {
	return nil
}

func (hooks) After(context.Context, *work.Session, pipeline.Options) error {
	return nil
}
