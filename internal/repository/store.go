package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type scanner interface {
	Scan(dest ...any) error
}

type pgStore struct {
	db    *pgxpool.Pool
	retry RetryPolicy
}

func (s pgStore) conn(ctx context.Context) querier {
	if tx := GetTx(ctx); tx != nil {
		return tx
	}
	return s.db
}

// read runs fn against the current executor. Outside a transaction
// unavailable-store failures are retried.
func (s pgStore) read(ctx context.Context, fn func(q querier) error) error {
	q := s.conn(ctx)
	if GetTx(ctx) != nil {
		return translate(fn(q))
	}
	return Retry(ctx, s.retry, func() error {
		return translate(fn(q))
	})
}

// translate maps driver errors onto domain error kinds. pgx.ErrNoRows is
// mapped to ErrNotFound; callers needing a different meaning check it first.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return err
}

func isConstraint(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
