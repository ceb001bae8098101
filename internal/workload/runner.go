package workload

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"instrumentor/internal/trace"
)

// Run executes spec on spec.Workers goroutines, timing every task and nested
// step with the Instrumentor carried by ctx. It returns the number of scopes
// that were timed.
func Run(ctx context.Context, spec Spec) (int, error) {
	defer trace.FunctionFrom(ctx).Stop()

	var scopes atomic.Int64
	scopes.Add(1)
	g, gctx := errgroup.WithContext(ctx)

	for w := 0; w < spec.Workers; w++ {
		g.Go(func() error {
			defer trace.ScopeFrom(gctx, "worker "+strconv.Itoa(w)).Stop()
			scopes.Add(1)
			for i := 0; i < spec.Tasks; i++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				if err := runTask(gctx, spec, &scopes); err != nil {
					return err
				}
			}
			return nil
		})
	}

	err := g.Wait()
	return int(scopes.Load()), err
}

func runTask(ctx context.Context, spec Spec, scopes *atomic.Int64) error {
	defer trace.FunctionFrom(ctx).Stop()
	scopes.Add(1)
	return step(ctx, spec, 1, scopes)
}

func step(ctx context.Context, spec Spec, level int, scopes *atomic.Int64) error {
	if level > spec.Depth {
		return simulate(ctx, spec.Work)
	}
	defer trace.ScopeFrom(ctx, "step "+strconv.Itoa(level)).Stop()
	scopes.Add(1)
	return step(ctx, spec, level+1, scopes)
}

// simulate blocks for d or until ctx is done.
func simulate(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
