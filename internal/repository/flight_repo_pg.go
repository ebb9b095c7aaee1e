package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	Find(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	UpdateCosts(ctx context.Context, id int64, businessCost, economyCost float64) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
	AdjustAvailability(ctx context.Context, id int64, class domain.TicketClass, delta int) (*domain.Flight, error)
}

type PGFlightRepository struct {
	pgStore
}

func NewFlightRepository(db *pgxpool.Pool, retry RetryPolicy) FlightRepository {
	return &PGFlightRepository{pgStore{db: db, retry: retry}}
}

const flightColumns = `id, depart_airport, dest_airport, flight_date,
	economy_available, economy_cost, economy_capacity,
	business_available, business_cost, business_capacity,
	created_at, updated_at`

func scanFlight(row scanner) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.DepartAirport, &f.DestAirport, &f.FlightDate,
		&f.EconomyAvailable, &f.EconomyCost, &f.EconomyCapacity,
		&f.BusinessAvailable, &f.BusinessCost, &f.BusinessCapacity,
		&f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// availabilityColumn whitelists the pool column for a ticket class.
func availabilityColumn(class domain.TicketClass) (string, error) {
	switch class {
	case domain.TicketEconomy:
		return "economy_available", nil
	case domain.TicketBusiness:
		return "business_available", nil
	}
	return "", domain.NewValidationError("ticketType", fmt.Sprintf("unknown ticket class %q", class))
}

func findQuery(filter domain.FlightFilter) (string, []any) {
	const base = `SELECT id, depart_airport, dest_airport, flight_date FROM flights`
	const order = ` ORDER BY flight_date, id`
	switch filter.Kind {
	case domain.FilterRouteAndDate:
		return base + ` WHERE depart_airport=$1 AND dest_airport=$2 AND flight_date=$3` + order,
			[]any{filter.DepartAirport, filter.DestAirport, dateOnly(filter.FlightDate)}
	case domain.FilterRoute:
		return base + ` WHERE depart_airport=$1 AND dest_airport=$2` + order,
			[]any{filter.DepartAirport, filter.DestAirport}
	case domain.FilterDate:
		return base + ` WHERE flight_date=$1` + order, []any{dateOnly(filter.FlightDate)}
	default:
		return base + order, nil
	}
}

func (r *PGFlightRepository) Find(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error) {
	sql, args := findQuery(filter)

	var flights []domain.FlightSummary
	err := r.read(ctx, func(q querier) error {
		rows, err := q.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		flights = make([]domain.FlightSummary, 0)
		for rows.Next() {
			var f domain.FlightSummary
			if err := rows.Scan(&f.ID, &f.DepartAirport, &f.DestAirport, &f.FlightDate); err != nil {
				return err
			}
			flights = append(flights, f)
		}
		return rows.Err()
	})
	return flights, err
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	var flight *domain.Flight
	err := r.read(ctx, func(q querier) (err error) {
		flight, err = scanFlight(q.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
		return err
	})
	return flight, err
}

func (r *PGFlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	err := r.conn(ctx).QueryRow(ctx, `INSERT INTO flights (depart_airport, dest_airport, flight_date,
			economy_available, economy_cost, economy_capacity,
			business_available, business_cost, business_capacity)
		VALUES ($1, $2, $3, $4, $5, $4, $6, $7, $6)
		RETURNING id, economy_capacity, business_capacity, created_at, updated_at`,
		f.DepartAirport, f.DestAirport, dateOnly(f.FlightDate),
		f.EconomyAvailable, f.EconomyCost,
		f.BusinessAvailable, f.BusinessCost).
		Scan(&f.ID, &f.EconomyCapacity, &f.BusinessCapacity, &f.CreatedAt, &f.UpdatedAt)
	return translate(err)
}

func (r *PGFlightRepository) UpdateCosts(ctx context.Context, id int64, businessCost, economyCost float64) (*domain.Flight, error) {
	flight, err := scanFlight(r.conn(ctx).QueryRow(ctx, `UPDATE flights
		SET business_cost=$2, economy_cost=$3, updated_at=now()
		WHERE id=$1
		RETURNING `+flightColumns, id, businessCost, economyCost))
	if err != nil {
		return nil, translate(err)
	}
	return flight, nil
}

// Delete removes the flight only while no booking references it. The
// bookings foreign key covers a booking committed between check and delete.
func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	q := r.conn(ctx)
	cmd, err := q.Exec(ctx, `DELETE FROM flights
		WHERE id=$1 AND NOT EXISTS (SELECT 1 FROM bookings WHERE flight_id=$1)`, id)
	if isConstraint(err, pgForeignKeyViolation) {
		return domain.ErrFlightHasBookings
	}
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}

	exists, err := r.exists(ctx, q, id)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrFlightHasBookings
	}
	return domain.ErrNotFound
}

// AdjustAvailability moves one ticket pool by delta in a single conditional
// update. A result below zero is refused with ErrConflict and nothing changes.
func (r *PGFlightRepository) AdjustAvailability(ctx context.Context, id int64, class domain.TicketClass, delta int) (*domain.Flight, error) {
	col, err := availabilityColumn(class)
	if err != nil {
		return nil, err
	}

	q := r.conn(ctx)
	flight, err := scanFlight(q.QueryRow(ctx, fmt.Sprintf(`UPDATE flights
		SET %[1]s = %[1]s + $2, updated_at = now()
		WHERE id = $1 AND %[1]s + $2 >= 0
		RETURNING `+flightColumns, col), id, delta))
	if err == nil {
		return flight, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, translate(err)
	}

	exists, err := r.exists(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return nil, fmt.Errorf("%w: %s pool of flight %d cannot move by %d", domain.ErrConflict, class, id, delta)
}

func (r *PGFlightRepository) exists(ctx context.Context, q querier, id int64) (bool, error) {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE id=$1)`, id).Scan(&exists); err != nil {
		return false, translate(err)
	}
	return exists, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
