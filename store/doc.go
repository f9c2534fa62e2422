// Package store provides a bun-based SQL persistence layer for jobqd.
//
// Store implements transactional persistence of job.Job records and the
// atomic claim primitive (spec.md §4.1/§4.3) using
// github.com/uptrace/bun. The same query builder backs two dialects:
//
//   - OpenSQLite   — modernc.org/sqlite, embedded, the default
//   - OpenPostgres — jackc/pgx/v5, for production deployments
//
// # Concurrency Model
//
// ClaimOne performs a single atomic UPDATE ... WHERE id IN (subquery)
// RETURNING * statement, so selection and the Pending/Failed ->
// Processing transition happen under one write lock. No two concurrent
// callers can observe the same row.
//
// SQLite callers should open the database with WAL mode and a
// busy_timeout, and should cap the connection pool at one writer
// (SetMaxOpenConns(1)), exactly as the retrieval pack's SQLite-backed
// queue tests do.
//
// # Schema
//
// InitDB creates the jobs table and the indexes required by the claim
// predicate and list/clean queries: (state, priority, created_at) and
// (state, next_retry_at). It is idempotent and safe to call on every
// process start.
package store
