package vm

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Program is one entry of a batch: code and its gas budget.
type Program struct {
	Code []byte
	Gas  uint64
}

// RunAll executes programs concurrently on at most workers goroutines
// (runtime.NumCPU() when workers <= 0). Every program gets its own
// Interpreter, so runs share no state; cfg.Tracer, if set, is shared and
// must be safe for concurrent use.
//
// Outcomes are returned in program order. A failing program is reported in
// its Outcome, not as an error. The returned error is non-nil only for an
// invalid cfg or when ctx is cancelled before every program was scheduled;
// outcomes of programs that never ran are left nil.
func RunAll(ctx context.Context, programs []Program, cfg Config, workers int) ([]*Outcome, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	outcomes := make([]*Outcome, len(programs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range programs {
		if err := ctx.Err(); err != nil {
			g.Wait()
			return outcomes, err
		}
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			in, err := New(p.Code, p.Gas, cfg)
			if err != nil {
				return err
			}
			outcomes[i] = in.Run()
			return nil
		})
	}
	return outcomes, g.Wait()
}
