package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Result holds the outcome of one unit of work submitted to Map.
type Result[R any] struct {
	Value R
	Err   error
}

// Map runs fn over items with at most limit in-flight calls and returns
// exactly len(items) results, where result[i] corresponds to items[i]
// regardless of completion order.
//
// Behavior:
//   - A unit's error is captured into its Result and never aborts siblings;
//     there is no cross-unit cancellation.
//   - A panicking unit is recovered, logged with its stack, and recorded as
//     a failed Result.
//   - Map returns only after every unit has produced a result (join point).
//   - Empty input returns an empty result without spawning workers.
//   - A limit below 1 is treated as 1.
func Map[T, R any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, item T) (R, error)) []Result[R] {
	if len(items) == 0 {
		return nil
	}
	if limit < 1 {
		limit = 1
	}

	results := make([]Result[R], len(items))

	// Plain errgroup, not WithContext: a failing unit must not cancel its
	// siblings. Each goroutine writes its own index only.
	var g errgroup.Group
	g.SetLimit(limit)

	for i, item := range items {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					ctxlog.From(ctx).Error("panic in worker",
						"recover", r,
						"stack", string(stack))
					results[i] = Result[R]{Err: goerr.New("panic in worker", goerr.V("recover", r))}
				}
			}()

			value, err := fn(ctx, item)
			results[i] = Result[R]{Value: value, Err: err}
			return nil
		})
	}

	// Workers never return errors; Wait is purely the join point.
	_ = g.Wait()

	return results
}
