// Package queue provides Manager, the high-level API workers and the
// CLI are built on (spec.md §4.3); the reaper and retention tasks use
// store.Store directly. It
// composes a store.Store with a config.Store for retry/timeout
// defaults, and owns the per-job log archive under <data>/logs.
package queue
