// Package processor contains the core batch logic for transcribing Welsh
// word lists. It reads the source list into memory, dispatches fixed-size
// chunks of words to a parallel worker pool, collects results in input
// order, and streams them chunk by chunk to the destination file while
// reporting progress.
package processor
