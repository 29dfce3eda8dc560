// Package db holds the SQL statements for the inventory tables and the row
// types they scan into. Repositories wrap it; nothing above infrastructure
// imports it directly.
package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries runs statements against a DBTX.
type Queries struct {
	db DBTX
}

// New returns Queries bound to db. Pass a *sql.Tx to run inside a transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}
