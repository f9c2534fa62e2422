package store

import (
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// OpenPostgres opens a PostgreSQL database via the pgx stdlib driver and
// wraps it in a *bun.DB using pgdialect.
//
// It exercises the exact same query builder and claim statement as
// OpenSQLite; only the dialect and driver differ, so jobqd runs
// unmodified against either backend. Intended for deployments that
// need a shared store across multiple hosts' worker processes, which
// SQLite's single-writer model does not support.
func OpenPostgres(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, pgdialect.New()), nil
}
