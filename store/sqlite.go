package store

import (
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens an embedded SQLite database at path (use
// "file::memory:?_pragma=journal_mode(WAL)" for an in-memory store in
// tests) and wraps it in a *bun.DB using sqlitedialect.
//
// The connection pool is capped at one open connection: SQLite allows
// only one writer at a time, and ClaimOne's correctness depends on the
// claim UPDATE being fully serialized against other writers rather than
// racing across pooled connections.
func OpenSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(1)
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}
