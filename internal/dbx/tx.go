// Package dbx holds database/sql helpers for the local store.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// Execer is the part of *sql.DB and *sql.Tx that key/value writes need.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// InTx runs fn inside a transaction on db and commits when fn returns nil.
// An error from fn, a failed commit or a panic leaves nothing behind.
//
//	err := dbx.InTx(ctx, db, func(tx dbx.Execer) error {
//	    _, err := tx.ExecContext(ctx, "DELETE FROM metadata WHERE key = ?", "user")
//	    return err
//	})
func InTx(ctx context.Context, db *sql.DB, fn func(tx Execer) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	done := false
	defer func() {
		if !done {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	done = true
	return nil
}
