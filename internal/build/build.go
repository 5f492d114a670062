package build

import (
	"context"

	"github.com/cruciblehq/rpmlb/internal/pipeline"
	"github.com/cruciblehq/rpmlb/internal/work"
)

var registry = pipeline.NewRegistry[pipeline.Builder](ErrUnknownBuilder)

func init() {
	registry.MustRegister("dummy", func() pipeline.Builder { return &Dummy{} })
	registry.MustRegister("mock", func() pipeline.Builder { return &Mock{} })
	registry.MustRegister("copr", func() pipeline.Builder { return &Copr{} })
	registry.MustRegister("custom", func() pipeline.Builder { return &Custom{} })
	registry.MustRegister("container", func() pipeline.Builder { return NewContainer() })
}

// Creates the builder registered under name.
func New(name string) (pipeline.Builder, error) {
	return registry.New(name)
}

// Returns the names of the available builders, sorted.
func Names() []string {
	return registry.Names()
}

// No-op Before and After for builders without setup.
type hooks struct{}

func (hooks) Before(context.Context, *work.Session, pipeline.Options) error {
	return nil
}

func (hooks) After(context.Context, *work.Session, pipeline.Options) error {
	return nil
}
