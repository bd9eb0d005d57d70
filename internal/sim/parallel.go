package sim

import (
	"context"
	"sync"

	"github.com/hwen/knotsim/internal/entity"
)

// Ensemble runs the same scenario several times in parallel. Each run
// builds fresh entities through the supplied factory, so runs share nothing.
type Ensemble struct {
	build   func() []*entity.Entity
	numRuns int
}

func NewEnsemble(build func() []*entity.Entity, numRuns int) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = New(e.build()).Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
