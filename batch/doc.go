// Package batch expands case-file patterns and runs independent simulation
// cases as fully isolated child processes. Parallelism is bounded: cases
// launch in groups of at most NCPU processes, with a join barrier after
// each group before the next one starts. Processes share no memory; a
// failing case never takes down its siblings.
package batch
