package sim

import (
	"context"
	"errors"
	"sync"
)

// Factory builds an independent Simulator for one ensemble member. The
// seed lets each member own a distinct random stream.
type Factory func(seed int64) (*Simulator, error)

type Ensemble struct {
	factory   Factory
	numRuns   int
	seedStart int64
	workers   int
}

// NewEnsemble runs numRuns members with seeds seedStart, seedStart+1, ...
// At most workers members run at once; workers <= 0 runs them all
// concurrently.
func NewEnsemble(factory Factory, numRuns int, seedStart int64, workers int) *Ensemble {
	if workers <= 0 || workers > numRuns {
		workers = numRuns
	}
	return &Ensemble{factory: factory, numRuns: numRuns, seedStart: seedStart, workers: workers}
}

// Run executes every member and returns results indexed by member. Errors
// from all members are joined; successful members keep their results.
func (e *Ensemble) Run(ctx context.Context, x0 State, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				cfgCopy := cfg
				cfgCopy.Seed = e.seedStart + int64(idx)

				s, err := e.factory(cfgCopy.Seed)
				if err != nil {
					errs[idx] = err
					continue
				}
				results[idx], errs[idx] = s.Run(ctx, x0, cfgCopy)
			}
		}()
	}

	for i := 0; i < e.numRuns; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, errors.Join(errs...)
}
