// Package database owns the PostgreSQL connection pool and transaction helpers.
// Repositories run their queries through DB() for reads and WithTx for writes.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/ghuser/vetclinic/pkg/logger"
)

// PostgreSQL SQLSTATE codes the repositories care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeLockNotAvailable    = "55P03"
	codeQueryCanceled       = "57014"
	codeSerialization       = "40001"
	codeDeadlockDetected    = "40P01"
)

// Database wraps a *sql.DB opened with the pgx stdlib driver.
type Database struct {
	db  *sql.DB
	log logger.Logger
}

// TxOptions bounds a transaction. Zero durations leave the server defaults in place.
type TxOptions struct {
	// LockTimeout is applied with SET LOCAL lock_timeout.
	LockTimeout time.Duration
	// StatementTimeout is applied with SET LOCAL statement_timeout.
	StatementTimeout time.Duration
	Isolation        sql.IsolationLevel
}

// NewPool opens a connection pool against url and verifies it with a ping.
func NewPool(ctx context.Context, url string, log logger.Logger) (*Database, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Database{db: db, log: log}, nil
}

// New wraps an already-opened *sql.DB. Used by tests and tooling.
func New(db *sql.DB, log logger.Logger) *Database {
	return &Database{db: db, log: log}
}

// DB returns the underlying *sql.DB for non-transactional reads.
func (d *Database) DB() *sql.DB {
	return d.db
}

// WithTx runs fn inside a read-committed transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return d.WithTxOptions(ctx, TxOptions{}, fn)
}

// WithTxOptions runs fn inside a transaction bounded by opts.
// A panic inside fn rolls back and re-panics.
func (d *Database) WithTxOptions(ctx context.Context, opts TxOptions, fn func(tx *sql.Tx) error) (err error) {
	tx, err := d.db.BeginTx(ctx, &sql.TxOptions{Isolation: opts.Isolation})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				d.log.ErrorContext(ctx, "rollback failed", "error", rbErr)
			}
		}
	}()

	if opts.LockTimeout > 0 {
		if _, err = tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = %d", opts.LockTimeout.Milliseconds())); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}
	if opts.StatementTimeout > 0 {
		if _, err = tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", opts.StatementTimeout.Milliseconds())); err != nil {
			return fmt.Errorf("set statement_timeout: %w", err)
		}
	}

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Ping checks the database connection health.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (d *Database) Close() {
	if err := d.db.Close(); err != nil && d.log != nil {
		d.log.Error("database close failed", "error", err)
	}
}

// IsUniqueViolation reports whether err is a unique constraint violation.
// When constraint is non-empty the violated constraint name must match too.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}

// IsUnavailable reports whether err means the transaction could not obtain
// its locks or ran out of time: lock timeout, statement timeout, serialization
// failure, deadlock, or a context deadline.
func IsUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case codeLockNotAvailable, codeQueryCanceled, codeSerialization, codeDeadlockDetected:
		return true
	default:
		return false
	}
}
