// Package jobqd provides a durable background job queue: a persistent
// priority queue with delayed execution, exponential-backoff retries, a
// dead-letter channel, and a pool of concurrent workers that atomically
// claim, execute, and finalize shell commands.
//
// # Overview
//
// jobqd separates the durable record (job.Job) and its transition
// helpers from the storage contract (store.Store) and the orchestration
// built on top of it (queue.Manager, worker.Worker, reaper.ReaperWorker,
// retention.RetentionWorker, supervisor.Supervisor).
//
// # Delivery Semantics
//
// jobqd provides at-least-once processing guarantees. A job may be
// executed more than once if a worker crashes mid-attempt and the
// reaper later reclaims it, or if an operator retries a dead-lettered
// job. Commands should be written to tolerate re-execution.
//
// # State Machine
//
// Jobs follow this lifecycle:
//
//	Pending    -> Processing
//	Processing -> Completed
//	Processing -> Failed      (retries remain; waits on NextRetryAt)
//	Processing -> Dead        (retries exhausted)
//	Failed     -> Processing  (re-claimed once ready)
//	Dead       -> Pending     (operator-initiated DLQ retry)
//
// Completed and Dead are terminal unless a Dead job is explicitly
// requeued.
//
// # Retry Policy
//
// When an attempt ends in a nonzero exit, a timeout, or a spawn error:
//
//   - if Attempts < MaxRetries, the job is rescheduled with delay
//     backoff_base^Attempts seconds (job.RetryDelay)
//   - otherwise the job transitions to Dead
//
// # Components
//
//	store.Store                 — transactional persistence and the atomic claim primitive
//	config.Store                — durable key/value retry-policy defaults
//	queue.Manager                — enqueue, claim, finalize, stats, DLQ operations
//	worker.Worker                — poll/claim/execute loop with subprocess timeout
//	reaper.ReaperWorker           — reclaims processing jobs orphaned by a worker crash
//	retention.RetentionWorker     — purges old terminal records
//	supervisor.Supervisor        — spawns, tracks and signals worker OS processes
//
// # Concurrency Model
//
// Parallelism comes from the Supervisor running N worker OS processes,
// not from goroutine pools within one process: each Worker is a
// single-threaded cooperative poll loop, since the subprocess call it
// makes is not interruptible mid-flight. Worker, ReaperWorker,
// RetentionWorker and Supervisor all share the same start-once/
// graceful-stop-with-timeout lifecycle (internal.Lifecycle).
package jobqd
