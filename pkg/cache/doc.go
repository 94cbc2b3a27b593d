// Package cache provides a capacity-bounded, TTL-aware in-memory store used
// to memoize validation results by content fingerprint.
//
// Unlike a recency-based LRU, eviction under capacity pressure always
// removes the entry with the oldest creation timestamp; reads never promote
// an entry. An entry older than its TTL is treated as absent: reads on an
// expired entry remove it lazily, and Sweep removes every expired entry in
// one pass regardless of capacity pressure.
//
// The store is guarded by a single mutex and safe for concurrent use. It
// has an explicit lifecycle: construct with New, share by reference, drop
// when done. There is no package-level singleton, so tests can instantiate
// isolated stores.
package cache
