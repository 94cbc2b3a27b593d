// Package async provides a minimal generic future used by the batch layer
// to fan validation work out across a chunk and await every result before
// moving on.
//
// Go starts the supplied function in its own goroutine and returns a
// *Future immediately; Await blocks until completion. WaitAll awaits a
// whole chunk and returns the results in argument order regardless of
// completion order, which is what lets the batch processor preserve request
// order while running a chunk concurrently.
//
// If the context is already cancelled when Go is called, the function never
// runs and the future completes with the context error. Cancellation of
// in-flight work is deliberately not forced: a chunk that has started runs
// to completion.
package async
