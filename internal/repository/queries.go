// Package repository persists puzzles, per-player placement sessions, and
// solve-trace history in Postgres via pgx. It never touches
// internal/solver's bookkeeping directly -- callers hand it the placements
// and step trace they already computed, and this package gob-encodes them
// for storage. One struct per table, one params struct per write, one
// pgx.NamedArgs-driven SQL string per query.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so Queries can run
// against a pool directly or inside a caller-managed transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}
