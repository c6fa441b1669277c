package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vvka-141/appgen/internal/ddl"
	"github.com/vvka-141/appgen/pkg/appgen"
)

// Verify executes the CREATE TABLE statements against a private in-memory
// SQLite database and returns how many ran. ALTER TABLE ... ADD FOREIGN KEY
// is skipped because SQLite cannot attach constraints to existing tables.
// SQLite accepts references to tables created later, so undeferred output
// is checked completely.
func Verify(ctx context.Context, statements []ddl.Statement) (int, error) {
	db, err := sql.Open(string(DriverSQLite), ":memory:")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", appgen.ErrExecutionFailed, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	return verifyOn(ctx, db, statements)
}

func verifyOn(ctx context.Context, db *sql.DB, statements []ddl.Statement) (int, error) {
	executed := 0
	for i, stmt := range statements {
		if stmt.Kind != ddl.CreateTable {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt.SQL); err != nil {
			return executed, &StatementError{Index: i, Statement: stmt, Err: err}
		}
		executed++
	}
	return executed, nil
}
