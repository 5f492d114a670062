package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cruciblehq/rpmlb/internal/work"
)

// Applies phases to work sessions.
type Runner struct {
	Logger *slog.Logger // Logger for phase progress. Nil discards.
}

func (r *Runner) logger() *slog.Logger {
	if r == nil || r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// Runs one phase over every step of the session.
//
// Every numbered directory is created, whether or not its package is
// processed. A package is skipped when the policy's resume rule excludes it
// or when its dist pattern does not match opts.Dist. The first error aborts
// the run and is returned wrapped with the step label and package name. The
// working directory is restored before returning.
func (r *Runner) Run(ctx context.Context, s *work.Session, phase Phase, policy Policy, opts Options) error {
	if opts.Resume < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidResume, opts.Resume)
	}

	log := r.logger().With("phase", phase.Name())
	bypass := policy == ResumeBypass && opts.Resume > 0

	if bypass {
		log.Info("skipping phase", "resume", opts.Resume)
	} else if err := phase.Before(ctx, s, opts); err != nil {
		return fmt.Errorf("%w: %s: before: %w", ErrPhase, phase.Name(), err)
	}

	if err := r.steps(ctx, s, phase, policy, bypass, opts, log); err != nil {
		return err
	}

	if bypass {
		return nil
	}
	if err := phase.After(ctx, s, opts); err != nil {
		return fmt.Errorf("%w: %s: after: %w", ErrPhase, phase.Name(), err)
	}
	return nil
}

func (r *Runner) steps(ctx context.Context, s *work.Session, phase Phase, policy Policy, bypass bool, opts Options, log *slog.Logger) error {
	c := s.NumberedSteps()
	defer c.Close()

	scoped := packageScoped(phase)

	for c.Next() {
		if bypass {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		step := c.Step()
		pkg := step.Package
		wrap := func(err error) error {
			return fmt.Errorf("%w: %s: %s %s: %w", ErrPhase, phase.Name(), step.Label, pkg.Name, err)
		}

		if policy == ResumeFromPosition && step.Index < opts.Resume {
			log.Debug("skipping package before resume position", "label", step.Label, "package", pkg.Name)
			continue
		}

		applies, err := pkg.AppliesTo(opts.Dist)
		if err != nil {
			return wrap(err)
		}
		if !applies {
			log.Info("skipping package for dist", "label", step.Label, "package", pkg.Name, "dist", pkg.Dist, "target", opts.Dist)
			if sk, ok := phase.(Skipper); ok {
				if err := sk.Skip(ctx, pkg, opts); err != nil {
					return wrap(err)
				}
			}
			continue
		}

		if scoped {
			if err := c.Descend(); err != nil {
				return wrap(err)
			}
		}

		log.Info("processing", "label", step.Label, "package", pkg.String())
		if err := phase.Process(ctx, pkg, opts); err != nil {
			return wrap(err)
		}
	}

	if err := c.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPhase, phase.Name(), err)
	}
	return c.Close()
}
