package batch

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/openreg/regval/pkg/cache"
	"github.com/openreg/regval/pkg/engine"
	"github.com/openreg/regval/pkg/fingerprint"
	"github.com/openreg/regval/pkg/rules"
	"github.com/openreg/regval/pkg/vrr"
)

// Metrics is a point-in-time snapshot of service activity.
type Metrics struct {
	EngineCalls uint64
	Processed   uint64
	QueueDepth  int
}

// CacheStats pairs the snapshots of both caches.
type CacheStats struct {
	Reports cache.Stats
	Fields  cache.Stats
}

// Service wraps a validation engine with result caches and a priority
// batch queue. Construct with New and release with Close.
type Service struct {
	eng     *engine.Engine
	cfg     Config
	log     *slog.Logger
	reports *cache.Store[string, *engine.Result]
	fields  *cache.Store[string, vrr.Outcome]

	mu       sync.Mutex
	queue    []*pending
	draining bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	engineCalls atomic.Uint64
	processed   atomic.Uint64
}

// Option configures service construction.
type Option func(*Service)

// WithLogger sets the structured logger used for drain diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a service over the given engine. Non-positive config fields
// fall back to their defaults. The periodic cache sweeper starts
// immediately and runs until Close.
func New(eng *engine.Engine, cfg Config, opts ...Option) *Service {
	cfg = cfg.normalized()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Service{
		eng:     eng,
		cfg:     cfg,
		log:     slog.Default(),
		reports: cache.New[string, *engine.Result](cfg.ReportCacheCapacity),
		fields:  cache.New[string, vrr.Outcome](cfg.FieldCacheCapacity),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.wg.Add(1)
	go s.sweeper()

	return s
}

// Close cancels the service context and waits for the drain loop and the
// sweeper to finish. Requests still queued complete their futures with the
// context error; in-flight chunk work runs to completion first.
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()
}

// ValidateReport returns the memoized result for the report's fingerprint,
// computing and inserting it on a miss. A zero ttl uses the configured
// default.
func (s *Service) ValidateReport(report engine.Report, reportType string, ctx *rules.Context, ttl time.Duration) *engine.Result {
	key := fingerprint.Report(report, ctx)
	if res, ok := s.reports.Get(key); ok {
		return res
	}

	res := s.eng.ValidateReport(report, reportType, ctx)
	s.engineCalls.Add(1)
	s.reports.Put(key, res, s.ttlOrDefault(ttl))
	return res
}

// ValidateField is the field-level analogue of ValidateReport, keyed by
// (path, value, report type).
func (s *Service) ValidateField(path string, value any, reportType string, ctx *rules.Context, ttl time.Duration) vrr.Outcome {
	key := fingerprint.Field(path, value, reportType)
	if out, ok := s.fields.Get(key); ok {
		return out
	}

	out := s.eng.ValidateField(path, value, reportType, ctx)
	s.engineCalls.Add(1)
	s.fields.Put(key, out, s.ttlOrDefault(ttl))
	return out
}

// Metrics returns a snapshot of service activity.
func (s *Service) Metrics() Metrics {
	s.mu.Lock()
	depth := len(s.queue)
	s.mu.Unlock()

	return Metrics{
		EngineCalls: s.engineCalls.Load(),
		Processed:   s.processed.Load(),
		QueueDepth:  depth,
	}
}

// CacheStats returns snapshots of both caches.
func (s *Service) CacheStats() CacheStats {
	return CacheStats{Reports: s.reports.Stats(), Fields: s.fields.Stats()}
}

// Clear empties both caches. Queued work is unaffected.
func (s *Service) Clear() {
	s.reports.Clear()
	s.fields.Clear()
}

func (s *Service) ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return s.cfg.DefaultTTL
	}
	return ttl
}

// sweeper periodically removes expired entries from both caches, regardless
// of capacity pressure or traffic.
func (s *Service) sweeper() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			removed := s.reports.Sweep() + s.fields.Sweep()
			if removed > 0 {
				s.log.Debug("cache sweep", slog.Int("removed", removed))
			}
		}
	}
}
