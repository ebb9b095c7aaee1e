package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InventoryRepository interface {
	FindDrift(ctx context.Context) ([]domain.InventoryDrift, error)
	Repair(ctx context.Context, flightID int64, class domain.TicketClass) error
}

type PGInventoryRepository struct {
	pgStore
}

func NewInventoryRepository(db *pgxpool.Pool, retry RetryPolicy) InventoryRepository {
	return &PGInventoryRepository{pgStore{db: db, retry: retry}}
}

func (r *PGInventoryRepository) FindDrift(ctx context.Context) ([]domain.InventoryDrift, error) {
	var drift []domain.InventoryDrift
	err := r.read(ctx, func(q querier) error {
		rows, err := q.Query(ctx, `
			SELECT f.id, c.class, c.capacity, COALESCE(b.booked, 0), c.available
			FROM flights f
			CROSS JOIN LATERAL (VALUES
				('economy', f.economy_capacity, f.economy_available),
				('business', f.business_capacity, f.business_available)
			) AS c(class, capacity, available)
			LEFT JOIN (
				SELECT flight_id, ticket_type, count(*) AS booked
				FROM bookings GROUP BY flight_id, ticket_type
			) b ON b.flight_id = f.id AND b.ticket_type = c.class
			WHERE c.capacity - COALESCE(b.booked, 0) <> c.available
			ORDER BY f.id, c.class`)
		if err != nil {
			return err
		}
		defer rows.Close()

		drift = make([]domain.InventoryDrift, 0)
		for rows.Next() {
			var d domain.InventoryDrift
			if err := rows.Scan(&d.FlightID, &d.Class, &d.Capacity, &d.Booked, &d.Available); err != nil {
				return err
			}
			drift = append(drift, d)
		}
		return rows.Err()
	})
	return drift, err
}

// repairQueries returns the statements Repair runs for one pool. The
// flight row is locked first: booking writes update that row in the same
// transaction as their insert, so the count taken after the lock sees every
// booking whose seat was already taken from the pool.
func repairQueries(class domain.TicketClass) (lock, count, update string, err error) {
	col, err := availabilityColumn(class)
	if err != nil {
		return "", "", "", err
	}
	capacity := "economy_capacity"
	if class == domain.TicketBusiness {
		capacity = "business_capacity"
	}

	lock = fmt.Sprintf(`SELECT %s FROM flights WHERE id=$1 FOR UPDATE`, capacity)
	count = `SELECT count(*) FROM bookings WHERE flight_id=$1 AND ticket_type=$2`
	update = fmt.Sprintf(`UPDATE flights SET %s = GREATEST(0, $2::int - $3::int), updated_at = now() WHERE id=$1`, col)
	return lock, count, update, nil
}

// Repair recomputes one pool from capacity and the bookings present while
// the flight row is locked.
func (r *PGInventoryRepository) Repair(ctx context.Context, flightID int64, class domain.TicketClass) error {
	lock, count, update, err := repairQueries(class)
	if err != nil {
		return err
	}

	return NewTxManager(r.db, r.retry).WithinTransaction(ctx, func(ctx context.Context) error {
		q := r.conn(ctx)

		var capacity int
		if err := q.QueryRow(ctx, lock, flightID).Scan(&capacity); err != nil {
			return translate(err)
		}
		var booked int
		if err := q.QueryRow(ctx, count, flightID, class).Scan(&booked); err != nil {
			return translate(err)
		}
		if _, err := q.Exec(ctx, update, flightID, capacity, booked); err != nil {
			return translate(err)
		}
		return nil
	})
}

var _ InventoryRepository = (*PGInventoryRepository)(nil)
