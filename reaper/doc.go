// Package reaper periodically reclaims jobs left Processing by a
// worker that crashed or was killed before finalizing them
// (spec.md §4.6, resolving its orphan-recovery open question).
//
// gqs solved the same problem with per-job lease renewal
// (Puller.ExtendLock); jobqd instead runs this separate sweep, since
// a worker here has no heartbeat to extend.
package reaper
