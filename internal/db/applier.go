// Package db applies compiled DDL to a database through database/sql.
//
// PostgreSQL is reached through pgx's stdlib driver and SQLite through
// modernc.org/sqlite, so no cgo is required.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/vvka-141/appgen/internal/ddl"
	"github.com/vvka-141/appgen/internal/retry"
	"github.com/vvka-141/appgen/pkg/appgen"
)

// Applier executes statements against one database.
type Applier struct {
	db       *sql.DB
	target   Target
	logger   appgen.Logger
	executor *retry.Executor
}

// NewApplier wraps an open database. The connection is verified by Ping.
// Retries use the default backoff and the database error classifier.
func NewApplier(db *sql.DB, target Target, logger appgen.Logger) *Applier {
	executor := retry.NewExecutor(retry.NewDatabaseErrorClassifier(), retry.DefaultBackoff()).
		WithLogger(logger)
	return &Applier{db: db, target: target, logger: logger, executor: executor}
}

// WithExecutor replaces the retry executor used by Ping.
func (a *Applier) WithExecutor(executor *retry.Executor) *Applier {
	a.executor = executor
	return a
}

// Open parses connStr, opens the database and pings it.
func Open(ctx context.Context, connStr string, logger appgen.Logger) (*Applier, error) {
	target, err := ParseTarget(connStr)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(string(target.Driver), target.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appgen.ErrConnectionFailed, err)
	}
	if target.Driver == DriverSQLite {
		// In-memory SQLite databases exist per connection.
		db.SetMaxOpenConns(1)
	}

	a := NewApplier(db, target, logger)
	if err := a.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

// Ping verifies the connection, retrying transient failures.
// Errors wrap appgen.ErrConnectionFailed.
func (a *Applier) Ping(ctx context.Context) error {
	err := a.executor.Execute(ctx, func(ctx context.Context) error {
		return a.db.PingContext(ctx)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", appgen.ErrConnectionFailed, wrapConnectionError(err, a.target))
	}
	a.logger.Verbose("connected to %s", a.target)
	return nil
}

// Apply executes statements in order inside one transaction. Any failure
// rolls everything back and returns an error wrapping appgen.ErrExecutionFailed.
func (a *Applier) Apply(ctx context.Context, statements []ddl.Statement) error {
	if len(statements) == 0 {
		a.logger.Info("nothing to apply")
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", appgen.ErrExecutionFailed, err)
	}

	for i, stmt := range statements {
		a.logger.Verbose("executing statement %d/%d on %s", i+1, len(statements), stmt.Table)
		if _, err := tx.ExecContext(ctx, stmt.SQL); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				a.logger.Warn("rollback failed: %v", rbErr)
			}
			return &StatementError{Index: i, Statement: stmt, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit: %v", appgen.ErrExecutionFailed, err)
	}
	a.logger.Info("applied %d statement(s) to %s", len(statements), a.target)
	return nil
}

// Close closes the underlying database.
func (a *Applier) Close() error {
	return a.db.Close()
}

// StatementError reports the statement that failed during Apply.
type StatementError struct {
	Index     int
	Statement ddl.Statement
	Err       error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("%v: statement %d (%s %s) failed: %v",
		appgen.ErrExecutionFailed, e.Index+1, e.Statement.Kind, e.Statement.Table, e.Err)
}

// Is makes StatementError match appgen.ErrExecutionFailed.
func (e *StatementError) Is(target error) bool {
	return target == appgen.ErrExecutionFailed
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// wrapConnectionError adds actionable guidance to raw driver errors.
func wrapConnectionError(err error, t Target) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", t.Host, t.Port)

	switch {
	case t.Driver == DriverSQLite:
		return fmt.Errorf(`cannot open SQLite database %q

Possible causes:
  - The directory does not exist
  - The file is not a SQLite database
  - Missing write permission

Original error: %w`, t.Database, err)

	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port
  - Firewall blocking the connection

Original error: %w`, addr, t.Host, t.Port, err)

	case strings.Contains(errStr, "no such host"):
		return fmt.Errorf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable

Original error: %w`, t.Host, err)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database "%s"

Possible causes:
  - Wrong password in the connection string or $PGPASSWORD
  - Wrong username

Original error: %w`, t.Database, err)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`database "%s" does not exist

To create it:
  createdb %s

Original error: %w`, t.Database, t.Database, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets

Original error: %w`, addr, err)

	default:
		return fmt.Errorf("failed to connect to database: %w", err)
	}
}
