// Package batch runs per-item operations in fixed-size concurrent batches
// with per-item failure isolation. It backs both bulk review and bulk steward
// deactivation.
package batch

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// DefaultSize is the number of items processed together.
const DefaultSize = 5

// Result is the outcome of one item.
type Result[T any] struct {
	Item T
	Err  error
}

// ProgressFunc receives a snapshot after every finished item. Calls are
// serialized.
type ProgressFunc func(domain.BulkProgress)

// PanicError wraps a panic raised while processing an item.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// Run applies fn to every item. Items of one batch run concurrently and the
// next batch starts only after every item of the current one has finished,
// whatever its outcome. An item error never cancels its siblings. Once ctx is
// done the remaining items are not started and fail with ctx.Err().
//
// Results are returned in input order.
func Run[T any](ctx context.Context, items []T, size int, fn func(ctx context.Context, item T) error, onProgress ProgressFunc) []Result[T] {
	if size < 1 {
		size = DefaultSize
	}

	results := make([]Result[T], len(items))
	progress := domain.BulkProgress{Total: len(items)}
	var mu sync.Mutex

	record := func(i int, err error) {
		mu.Lock()
		defer mu.Unlock()
		results[i] = Result[T]{Item: items[i], Err: err}
		progress.Completed++
		if err != nil {
			progress.Failed++
		}
		if onProgress != nil {
			onProgress(progress)
		}
	}

	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))

		if err := ctx.Err(); err != nil {
			for i := start; i < len(items); i++ {
				record(i, err)
			}
			break
		}

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				record(i, safeCall(ctx, fn, items[i]))
				return nil
			})
		}
		_ = g.Wait()
	}

	return results
}

func safeCall[T any](ctx context.Context, fn func(ctx context.Context, item T) error, item T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn(ctx, item)
}
