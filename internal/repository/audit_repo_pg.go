package repository

import (
	"context"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepository interface {
	Append(ctx context.Context, entry domain.AuditEntry) (bool, error)
}

type PGAuditRepository struct {
	pgStore
}

func NewAuditRepository(db *pgxpool.Pool, retry RetryPolicy) AuditRepository {
	return &PGAuditRepository{pgStore{db: db, retry: retry}}
}

// Append records an event once; a repeated event id is ignored and reported as false.
func (r *PGAuditRepository) Append(ctx context.Context, e domain.AuditEntry) (bool, error) {
	var inserted bool
	err := Retry(ctx, r.retry, func() error {
		cmd, err := r.conn(ctx).Exec(ctx, `INSERT INTO booking_audit (event_id, event_type, flight_id, booking_id, payload, occurred_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (event_id) DO NOTHING`,
			e.EventID, e.Type, e.FlightID, e.BookingID, e.Payload, e.OccurredAt)
		if err != nil {
			return translate(err)
		}
		inserted = cmd.RowsAffected() == 1
		return nil
	})
	return inserted, err
}

var _ AuditRepository = (*PGAuditRepository)(nil)
