// Package job defines the durable record managed by the queue and the
// pure state-transition helpers that drive it through its lifecycle.
//
// A Job is a snapshot of storage state: its Status, Attempts, and
// scheduling timestamps are maintained by the store and worker logic,
// not by callers. The Mark* helpers on Job mutate a local copy; they do
// not themselves persist anything. Callers obtain a Job from a store
// operation (claim, get, list), apply a Mark* transition, and write it
// back via the store.
package job
