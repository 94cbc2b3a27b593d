package async

import "context"

// Future represents the eventual result of one asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await blocks until the computation completes and returns its result.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// IsComplete reports completion without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Resolved returns an already-completed future. The batch layer uses it to
// hand back cached results through the same interface as computed ones.
func Resolved[U any](result U, err error) *Future[U] {
	f := &Future[U]{result: result, err: err, done: make(chan struct{})}
	close(f.done)
	return f
}

// Go runs fn in its own goroutine and returns a future for its result. A
// context that is already cancelled completes the future with the context
// error without running fn; once fn has started it always runs to
// completion.
func Go[T any, U any](ctx context.Context, in T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.result, f.err = fn(ctx, in)
	}()

	return f
}

// WaitAll awaits every future and returns the results in argument order.
// The first error encountered (in argument order) is returned alongside
// the complete result slice.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	var firstErr error
	for i, f := range futures {
		r, err := f.Await()
		results[i] = r
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return results, firstErr
}
