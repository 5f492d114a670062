package pipeline

import (
	"context"

	"github.com/cruciblehq/rpmlb/internal/recipe"
	"github.com/cruciblehq/rpmlb/internal/work"
)

// Resume behavior of a phase.
type Policy int

const (

	// A non-zero resume position skips the whole phase. Numbered
	// directories are still created.
	ResumeBypass Policy = iota

	// Packages positioned before the resume position are skipped; the
	// hooks still run.
	ResumeFromPosition
)

func (p Policy) String() string {
	switch p {
	case ResumeBypass:
		return "bypass"
	case ResumeFromPosition:
		return "from-position"
	}
	return "unknown"
}

// A unit of work applied to every package of a session.
//
// Before and After run once in the caller's working directory. Process runs
// once per package that is not skipped, inside its numbered directory, or
// inside its package directory for phases implementing [PackageScoped].
type Phase interface {
	Name() string
	Before(ctx context.Context, s *work.Session, opts Options) error
	Process(ctx context.Context, pkg recipe.Package, opts Options) error
	After(ctx context.Context, s *work.Session, opts Options) error
}

// Implemented by phases that react to packages skipped for their target
// distribution. Skip runs inside the numbered directory.
type Skipper interface {
	Skip(ctx context.Context, pkg recipe.Package, opts Options) error
}

// Implemented by phases whose Process runs inside the package directory.
type PackageScoped interface {
	PackageScoped() bool
}

func packageScoped(p Phase) bool {
	ps, ok := p.(PackageScoped)
	return ok && ps.PackageScoped()
}
