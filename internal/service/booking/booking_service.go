package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/Domenick1991/digitalairlines/internal/kafka"
	"github.com/Domenick1991/digitalairlines/internal/metrics"
	"github.com/Domenick1991/digitalairlines/internal/policy"
	"github.com/Domenick1991/digitalairlines/internal/repository"
	log "github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	Create(ctx context.Context, caller domain.Caller, flightID int64, input CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Booking, error)
	ListMine(ctx context.Context, caller domain.Caller) ([]domain.Booking, error)
	Cancel(ctx context.Context, caller domain.Caller, id int64) (*domain.Booking, error)
	ListForFlight(ctx context.Context, caller domain.Caller, flightID int64) ([]domain.FlightPassenger, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type CreateBookingInput struct {
	FirstName  string
	LastName   string
	PassportNo string
	BirthDate  string
	Email      string
	TicketType string
}

type BookingService struct {
	tx       repository.Transactor
	bookings repository.BookingRepository
	flights  repository.FlightRepository
	producer Producer
	topic    string
	now      func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithEvents(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.topic = topic
	}
}

func NewBookingService(
	tx repository.Transactor,
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		tx:       tx,
		bookings: bookings,
		flights:  flights,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) parseTraveller(in CreateBookingInput) (domain.Traveller, domain.TicketClass, error) {
	var (
		t   domain.Traveller
		err error
	)
	if t.FirstName, err = domain.RequireText("firstName", in.FirstName); err != nil {
		return t, "", err
	}
	if t.LastName, err = domain.RequireText("lastName", in.LastName); err != nil {
		return t, "", err
	}
	if t.PassportNo, err = domain.ParsePassport("passportNo", in.PassportNo); err != nil {
		return t, "", err
	}
	if t.BirthDate, err = domain.ParseBirthDate("birthDate", in.BirthDate, s.now()); err != nil {
		return t, "", err
	}
	if t.Email, err = domain.ParseEmail("email", in.Email); err != nil {
		return t, "", err
	}
	class, err := domain.ParseTicketClass(in.TicketType)
	if err != nil {
		return t, "", err
	}
	return t, class, nil
}

// Create takes one seat from the requested pool and records the booking in
// the same transaction. Route, date and cost are copied from the flight row
// the decrement returned.
func (s *BookingService) Create(ctx context.Context, caller domain.Caller, flightID int64, input CreateBookingInput) (*domain.Booking, error) {
	if err := policy.Authorize(caller, policy.CreateBooking); err != nil {
		return nil, err
	}
	traveller, class, err := s.parseTraveller(input)
	if err != nil {
		metrics.BookingsRefused.WithLabelValues(metrics.ReasonValidation).Inc()
		return nil, err
	}

	var booking *domain.Booking
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		flight, err := s.flights.AdjustAvailability(ctx, flightID, class, -1)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return domain.ErrNoSeats
			}
			return err
		}

		booking = &domain.Booking{
			FlightID:      flight.ID,
			TicketType:    class,
			Traveller:     traveller,
			DepartAirport: flight.DepartAirport,
			DestAirport:   flight.DestAirport,
			FlightDate:    flight.FlightDate,
			TicketCost:    flight.Cost(class),
		}
		return s.bookings.Insert(ctx, booking)
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoSeats):
			metrics.BookingsRefused.WithLabelValues(metrics.ReasonNoSeats).Inc()
			log.WithFields(log.Fields{"flight_id": flightID, "class": class}).Warn("booking refused: no seats left")
		case errors.Is(err, domain.ErrNotFound):
			metrics.BookingsRefused.WithLabelValues(metrics.ReasonNotFound).Inc()
		default:
			log.WithError(err).WithField("flight_id", flightID).Error("booking failed")
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	metrics.BookingsCreated.Inc()
	log.WithFields(log.Fields{
		"booking_id": booking.ID,
		"flight_id":  booking.FlightID,
		"class":      booking.TicketType,
		"user":       caller.Username,
	}).Info("booking created")
	s.publish(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Booking, error) {
	if err := policy.Authorize(caller, policy.ViewBooking); err != nil {
		return nil, err
	}
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Email() != caller.Email {
		return nil, fmt.Errorf("%w: booking %d", domain.ErrForbidden, id)
	}
	return booking, nil
}

func (s *BookingService) ListMine(ctx context.Context, caller domain.Caller) ([]domain.Booking, error) {
	if err := policy.Authorize(caller, policy.ListOwnBookings); err != nil {
		return nil, err
	}
	return s.bookings.ListByEmail(ctx, caller.Email)
}

// Cancel removes the booking and returns its seat to the pool in one transaction.
func (s *BookingService) Cancel(ctx context.Context, caller domain.Caller, id int64) (*domain.Booking, error) {
	if err := policy.Authorize(caller, policy.CancelBooking); err != nil {
		return nil, err
	}
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Email() != caller.Email {
		metrics.BookingsRefused.WithLabelValues(metrics.ReasonForbidden).Inc()
		return nil, fmt.Errorf("%w: booking %d", domain.ErrForbidden, id)
	}

	var deleted *domain.Booking
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.bookings.DeleteOwned(ctx, id, caller.Email)
		if err != nil {
			return err
		}
		_, err = s.flights.AdjustAvailability(ctx, deleted.FlightID, deleted.TicketType, +1)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	metrics.BookingsCancelled.Inc()
	log.WithFields(log.Fields{
		"booking_id": deleted.ID,
		"flight_id":  deleted.FlightID,
		"user":       caller.Username,
	}).Info("booking cancelled")
	s.publish(ctx, kafka.EventBookingCancelled, deleted)
	return deleted, nil
}

func (s *BookingService) ListForFlight(ctx context.Context, caller domain.Caller, flightID int64) ([]domain.FlightPassenger, error) {
	if err := policy.Authorize(caller, policy.ViewFlightBookings); err != nil {
		return nil, err
	}
	return s.bookings.ListByFlight(ctx, flightID)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.NewBookingEvent(eventType, booking.ID, booking.FlightID, string(booking.TicketType), booking.Email())
	if err := s.producer.Publish(ctx, s.topic, kafka.FlightKey(booking.FlightID), event); err != nil {
		log.WithError(err).WithField("booking_id", booking.ID).Warnf("failed to publish %s event", eventType)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
