package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/poincare/internal/config"
)

// Ensemble runs independent specs concurrently. Each run owns its own
// stepper and sampler, so results match sequential runs exactly.
type Ensemble struct {
	specs   []*config.RunSpec
	workers int
	opts    []Option
}

// NewEnsemble uses GOMAXPROCS workers when workers < 1.
func NewEnsemble(specs []*config.RunSpec, workers int, opts ...Option) *Ensemble {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Ensemble{specs: specs, workers: workers, opts: opts}
}

// Run returns one result per spec, in input order. The first failing
// run cancels the others.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(e.specs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, spec := range e.specs {
		g.Go(func() error {
			res, err := Run(ctx, spec, e.opts...)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
