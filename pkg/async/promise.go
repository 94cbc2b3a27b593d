package async

import "sync"

// Promise is the producer side of a Future: the batch queue hands the
// Future to the caller at enqueue time and completes the Promise when the
// drain loop has processed the request.
type Promise[U any] struct {
	future *Future[U]
	once   sync.Once
}

// NewPromise creates an unresolved promise.
func NewPromise[U any]() *Promise[U] {
	return &Promise[U]{future: &Future[U]{done: make(chan struct{})}}
}

// Future returns the consumer side.
func (p *Promise[U]) Future() *Future[U] { return p.future }

// Complete resolves the promise. Only the first call has any effect.
func (p *Promise[U]) Complete(result U, err error) {
	p.once.Do(func() {
		p.future.result = result
		p.future.err = err
		close(p.future.done)
	})
}
