// Package worker implements the single-threaded claim/execute/finalize
// loop a jobqd worker process runs (spec.md §4.5). Unlike the teacher
// library's pool-based Worker, each process here runs exactly one
// command at a time; parallelism comes from the supervisor running
// several such processes side by side.
package worker
