package repository

import (
	"context"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Insert(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	ListByFlight(ctx context.Context, flightID int64) ([]domain.FlightPassenger, error)
	DeleteOwned(ctx context.Context, id int64, email string) (*domain.Booking, error)
}

type PGBookingRepository struct {
	pgStore
}

func NewBookingRepository(db *pgxpool.Pool, retry RetryPolicy) BookingRepository {
	return &PGBookingRepository{pgStore{db: db, retry: retry}}
}

const bookingColumns = `id, flight_id, ticket_type, first_name, last_name, passport_no, birth_date, email,
	depart_airport, dest_airport, flight_date, ticket_cost, created_at`

func scanBooking(row scanner) (*domain.Booking, error) {
	var b domain.Booking
	t := &b.Traveller
	if err := row.Scan(&b.ID, &b.FlightID, &b.TicketType, &t.FirstName, &t.LastName, &t.PassportNo, &t.BirthDate, &t.Email,
		&b.DepartAirport, &b.DestAirport, &b.FlightDate, &b.TicketCost, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) Insert(ctx context.Context, b *domain.Booking) error {
	t := b.Traveller
	err := r.conn(ctx).QueryRow(ctx, `INSERT INTO bookings (flight_id, ticket_type, first_name, last_name, passport_no, birth_date, email,
			depart_airport, dest_airport, flight_date, ticket_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`,
		b.FlightID, b.TicketType, t.FirstName, t.LastName, t.PassportNo, dateOnly(t.BirthDate), t.Email,
		b.DepartAirport, b.DestAirport, dateOnly(b.FlightDate), b.TicketCost).
		Scan(&b.ID, &b.CreatedAt)
	if isConstraint(err, pgForeignKeyViolation) {
		return domain.ErrNotFound
	}
	return translate(err)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var booking *domain.Booking
	err := r.read(ctx, func(q querier) (err error) {
		booking, err = scanBooking(q.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
		return err
	})
	return booking, err
}

func (r *PGBookingRepository) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.read(ctx, func(q querier) error {
		rows, err := q.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE email=$1 ORDER BY id`, email)
		if err != nil {
			return err
		}
		defer rows.Close()

		bookings = make([]domain.Booking, 0)
		for rows.Next() {
			b, err := scanBooking(rows)
			if err != nil {
				return err
			}
			bookings = append(bookings, *b)
		}
		return rows.Err()
	})
	return bookings, err
}

func (r *PGBookingRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.FlightPassenger, error) {
	var passengers []domain.FlightPassenger
	err := r.read(ctx, func(q querier) error {
		rows, err := q.Query(ctx, `SELECT first_name, last_name, ticket_type FROM bookings WHERE flight_id=$1 ORDER BY id`, flightID)
		if err != nil {
			return err
		}
		defer rows.Close()

		passengers = make([]domain.FlightPassenger, 0)
		for rows.Next() {
			var p domain.FlightPassenger
			if err := rows.Scan(&p.Name, &p.LastName, &p.TicketType); err != nil {
				return err
			}
			passengers = append(passengers, p)
		}
		return rows.Err()
	})
	return passengers, err
}

// DeleteOwned deletes the booking only if it still carries the given email.
func (r *PGBookingRepository) DeleteOwned(ctx context.Context, id int64, email string) (*domain.Booking, error) {
	booking, err := scanBooking(r.conn(ctx).QueryRow(ctx, `DELETE FROM bookings WHERE id=$1 AND email=$2 RETURNING `+bookingColumns, id, email))
	if err != nil {
		return nil, translate(err)
	}
	return booking, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
