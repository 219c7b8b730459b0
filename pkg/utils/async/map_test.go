package async_test

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/herald/pkg/utils/async"
)

func TestMap_PreservesOrder(t *testing.T) {
	ctx := context.Background()

	// Later items finish first: earlier items sleep longer
	items := []int{0, 1, 2, 3, 4, 5, 6, 7}
	results := async.Map(ctx, items, 8, func(ctx context.Context, item int) (string, error) {
		time.Sleep(time.Duration(len(items)-item) * 5 * time.Millisecond)
		return "item-" + strconv.Itoa(item), nil
	})

	gt.Equal(t, len(results), len(items))
	for i, result := range results {
		gt.NoError(t, result.Err)
		gt.Equal(t, result.Value, "item-"+strconv.Itoa(i))
	}
}

func TestMap_IsolatesErrors(t *testing.T) {
	ctx := context.Background()

	items := []int{0, 1, 2, 3, 4, 5}
	results := async.Map(ctx, items, 3, func(ctx context.Context, item int) (string, error) {
		if item%2 == 0 {
			return "", goerr.New("boom", goerr.V("item", item))
		}
		return "ok", nil
	})

	gt.Equal(t, len(results), len(items))
	for i, result := range results {
		if i%2 == 0 {
			gt.Error(t, result.Err)
		} else {
			gt.NoError(t, result.Err)
			gt.Equal(t, result.Value, "ok")
		}
	}
}

func TestMap_EnforcesLimit(t *testing.T) {
	ctx := context.Background()

	const limit = 3
	var inFlight, peak atomic.Int64

	items := make([]int, 20)
	async.Map(ctx, items, limit, func(ctx context.Context, item int) (struct{}, error) {
		n := inFlight.Add(1)
		for {
			current := peak.Load()
			if n <= current || peak.CompareAndSwap(current, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		return struct{}{}, nil
	})

	gt.V(t, peak.Load() <= limit).Equal(true)
	gt.V(t, peak.Load() >= 1).Equal(true)
}

func TestMap_EmptyInput(t *testing.T) {
	ctx := context.Background()

	var calls atomic.Int64
	results := async.Map(ctx, []int{}, 10, func(ctx context.Context, item int) (int, error) {
		calls.Add(1)
		return item, nil
	})

	gt.Equal(t, len(results), 0)
	gt.Equal(t, calls.Load(), int64(0))
}

func TestMap_RecoversPanic(t *testing.T) {
	ctx := context.Background()

	items := []int{0, 1, 2}
	results := async.Map(ctx, items, 2, func(ctx context.Context, item int) (string, error) {
		if item == 1 {
			panic("worker exploded")
		}
		return "ok", nil
	})

	gt.Equal(t, len(results), 3)
	gt.NoError(t, results[0].Err)
	gt.Error(t, results[1].Err)
	gt.NoError(t, results[2].Err)
}

func TestMap_LimitBelowOne(t *testing.T) {
	ctx := context.Background()

	var inFlight, peak atomic.Int64
	items := make([]int, 5)
	results := async.Map(ctx, items, 0, func(ctx context.Context, item int) (struct{}, error) {
		n := inFlight.Add(1)
		for {
			current := peak.Load()
			if n <= current || peak.CompareAndSwap(current, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		inFlight.Add(-1)
		return struct{}{}, nil
	})

	gt.Equal(t, len(results), 5)
	gt.Equal(t, peak.Load(), int64(1))
}
