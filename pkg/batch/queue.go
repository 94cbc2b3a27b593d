package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/openreg/regval/pkg/async"
	"github.com/openreg/regval/pkg/engine"
	"github.com/openreg/regval/pkg/fingerprint"
	"github.com/openreg/regval/pkg/rules"
)

// Request is one queued validation job. Higher Priority drains first;
// equal priorities drain in insertion order.
type Request struct {
	ReportID   string
	Report     engine.Report
	ReportType string
	Context    *rules.Context
	Priority   int
}

type pending struct {
	req     Request
	promise *async.Promise[*engine.Result]
}

// Enqueue inserts a request into the priority queue and returns a future
// for its result. A request whose result is already cached resolves
// immediately without being queued. A drain loop starts automatically if
// none is active.
func (s *Service) Enqueue(req Request) *async.Future[*engine.Result] {
	if res, ok := s.reports.Get(fingerprint.Report(req.Report, req.Context)); ok {
		return async.Resolved(res, nil)
	}

	p := &pending{req: req, promise: async.NewPromise[*engine.Result]()}

	s.mu.Lock()
	// Insert after every request of equal or higher priority so ordering
	// is stable among equals.
	i := len(s.queue)
	for i > 0 && s.queue[i-1].req.Priority < req.Priority {
		i--
	}
	s.queue = append(s.queue, nil)
	copy(s.queue[i+1:], s.queue[i:])
	s.queue[i] = p

	start := !s.draining
	if start {
		s.draining = true
		s.wg.Add(1)
	}
	s.mu.Unlock()

	if start {
		go s.drain()
	}

	return p.promise.Future()
}

// drain processes the queue in groups until it is empty, then exits. Only
// one drain loop is active at a time; Enqueue starts a new one when needed.
func (s *Service) drain() {
	defer s.wg.Done()

	for {
		group := s.takeGroup()
		if group == nil {
			return
		}

		s.log.Debug("draining batch group", slog.Int("size", len(group)))
		if !s.processGroup(group) {
			s.failQueued()
			return
		}

		// Fixed pause between groups bounds peak load.
		select {
		case <-s.ctx.Done():
			s.failQueued()
			return
		case <-time.After(s.cfg.GroupDelay):
		}
	}
}

// takeGroup pops up to GroupSize requests, or marks the drain finished and
// returns nil when the queue is empty.
func (s *Service) takeGroup() []*pending {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		s.draining = false
		return nil
	}

	n := min(s.cfg.GroupSize, len(s.queue))
	group := s.queue[:n]
	s.queue = append([]*pending(nil), s.queue[n:]...)
	return group
}

// processGroup validates a group in chunks of ChunkSize, awaiting each
// chunk before starting the next. Cancellation is honoured between chunks;
// a started chunk always completes. Returns false when cancelled.
func (s *Service) processGroup(group []*pending) bool {
	for start := 0; start < len(group); start += s.cfg.ChunkSize {
		select {
		case <-s.ctx.Done():
			for _, p := range group[start:] {
				p.promise.Complete(nil, s.ctx.Err())
			}
			return false
		default:
		}

		chunk := group[start:min(start+s.cfg.ChunkSize, len(group))]

		futures := make([]*async.Future[*engine.Result], len(chunk))
		for i, p := range chunk {
			futures[i] = async.Go(s.ctx, p.req, func(_ context.Context, req Request) (*engine.Result, error) {
				return s.ValidateReport(req.Report, req.ReportType, req.Context, 0), nil
			})
		}

		// Results complete in request order regardless of which
		// validation finished first.
		for i, f := range futures {
			res, err := f.Await()
			chunk[i].promise.Complete(res, err)
			s.processed.Add(1)
		}
	}
	return true
}

// failQueued completes every future still queued with the context error.
func (s *Service) failQueued() {
	s.mu.Lock()
	remaining := s.queue
	s.queue = nil
	s.draining = false
	s.mu.Unlock()

	for _, p := range remaining {
		p.promise.Complete(nil, s.ctx.Err())
	}
}
