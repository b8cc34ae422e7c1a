// Package warehouse implements the star-schema demonstration warehouse:
// schema management, sample data generation, aggregate analytics, data
// quality checks, and lineage metadata.
package warehouse

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is an interface that *pgxpool.Pool, *pgx.Conn, and pgx.Tx satisfy.
// The warehouse works against any of them; tests can run everything
// inside a single connection.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Warehouse provides access to the demonstration data warehouse. It is
// constructed once at startup with an open database handle and carries no
// other state.
type Warehouse struct {
	db         DB
	thresholds Thresholds
}

// New creates a Warehouse over an open database handle. A nil thresholds
// map means every quality check uses a threshold of 0.
func New(db DB, thresholds Thresholds) *Warehouse {
	return &Warehouse{db: db, thresholds: thresholds}
}

// FactCount returns the number of rows in the fact table.
func (w *Warehouse) FactCount(ctx context.Context) (int64, error) {
	var count int64
	err := w.db.QueryRow(ctx, "SELECT COUNT(*) FROM fact_sales").Scan(&count)
	return count, err
}
