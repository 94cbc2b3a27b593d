// Package batch makes repeated and bulk validation cheap: it memoizes
// engine results by content fingerprint in TTL-bounded caches and drains a
// priority queue of validation requests with bounded parallelism.
//
// # Caching
//
// ValidateReport and ValidateField consult a report-level and a field-level
// cache keyed by deterministic fingerprints. A hit returns the cached
// result without invoking the engine; a miss computes and inserts. Both
// caches evict their oldest-created entry under capacity pressure, and a
// periodic sweeper removes expired entries independent of traffic.
//
// # Batching
//
// Enqueue inserts a request so that higher priority drains first, with
// insertion order preserved among equal priorities, and returns a future
// for its result. A drain loop starts whenever requests are queued and no
// loop is active; re-entrant triggers are no-ops. The loop takes fixed-size
// groups off the queue, runs each group in fixed-size concurrent chunks,
// awaits every chunk before the next, and sleeps a fixed delay between
// groups to bound peak load.
//
// Cancellation is explicit: Close cancels the service context, which is
// checked between chunks. In-flight chunk work always runs to completion;
// requests still queued complete their futures with the context error.
package batch
