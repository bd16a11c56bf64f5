package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TxFunc runs inside a transaction.
type TxFunc func(*sqlx.Tx) error

// WithTransaction begins a transaction, runs fn and commits.
// Any error or panic from fn rolls the transaction back.
func WithTransaction(ctx context.Context, db *sqlx.DB, fn TxFunc) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// WithTransactionResult is WithTransaction for functions returning a value.
func WithTransactionResult[T any](ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) (T, error)) (T, error) {
	var result T

	err := WithTransaction(ctx, db, func(tx *sqlx.Tx) error {
		var fnErr error
		result, fnErr = fn(tx)
		return fnErr
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
