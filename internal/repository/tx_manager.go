package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

type TxManager struct {
	pool  *pgxpool.Pool
	retry RetryPolicy
}

func NewTxManager(pool *pgxpool.Pool, retry RetryPolicy) *TxManager {
	return &TxManager{pool: pool, retry: retry}
}

// WithinTransaction runs fn inside one transaction carried by the context.
// Repositories called with that context join it. A context that already
// carries a transaction is reused as is.
func (tm *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if GetTx(ctx) != nil {
		return fn(ctx)
	}

	var tx pgx.Tx
	if err := Retry(ctx, tm.retry, func() error {
		var beginErr error
		tx, beginErr = tm.pool.Begin(ctx)
		return translate(beginErr)
	}); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			err = fmt.Errorf("commit transaction: %w", translate(commitErr))
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, tx))
}

// GetTx returns the transaction carried by ctx, or nil.
func GetTx(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return nil
}

var _ Transactor = (*TxManager)(nil)
