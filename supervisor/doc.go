// Package supervisor spawns and tracks N worker OS processes
// (spec.md §4.6). Parallelism in jobqd comes from running several
// single-threaded worker processes side by side rather than from
// goroutines inside one process, so the Supervisor manages process
// lifetimes the way the rest of the package manages goroutine
// lifetimes: start once, signal to stop, wait for drain.
package supervisor
