package flight

import (
	"context"
	"sync"
)

// Ensemble flies several recorders side by side. Each recorder must own its
// session; sessions are not shared between goroutines.
type Ensemble struct {
	recorders []*Recorder
}

func NewEnsemble(rs ...*Recorder) *Ensemble {
	return &Ensemble{recorders: rs}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.recorders))
	errs := make([]error, len(e.recorders))

	var wg sync.WaitGroup
	for i, r := range e.recorders {
		wg.Add(1)
		go func(idx int, r *Recorder) {
			defer wg.Done()
			results[idx], errs[idx] = r.Run(ctx, cfg)
		}(i, r)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
