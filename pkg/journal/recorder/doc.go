// Package recorder writes journal entries asynchronously.
//
// Record assigns a UUID, hashes the source and truncates it to the
// configured length, then hands the entry to a buffered channel. A single
// worker goroutine drains the channel into storage. Close drains whatever is
// still buffered before returning, so no accepted entry is lost on a clean
// shutdown.
package recorder
