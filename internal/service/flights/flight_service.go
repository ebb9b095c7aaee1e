package flights

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/Domenick1991/digitalairlines/internal/kafka"
	"github.com/Domenick1991/digitalairlines/internal/metrics"
	"github.com/Domenick1991/digitalairlines/internal/policy"
	"github.com/Domenick1991/digitalairlines/internal/query"
	"github.com/Domenick1991/digitalairlines/internal/repository"
	log "github.com/sirupsen/logrus"
)

type FlightUseCase interface {
	Search(ctx context.Context, caller domain.Caller, raw query.RawFilter) ([]domain.FlightSummary, error)
	Get(ctx context.Context, caller domain.Caller, id int64) (*FlightDetail, error)
	Create(ctx context.Context, caller domain.Caller, input CreateFlightInput) (*domain.Flight, error)
	UpdateCosts(ctx context.Context, caller domain.Caller, id int64, input UpdateCostsInput) (*domain.Flight, error)
	Delete(ctx context.Context, caller domain.Caller, id int64) (DeleteOutcome, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, int64, error)
	SetFlights(ctx context.Context, gen int64, filter domain.FlightFilter, flights []domain.FlightSummary) error
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

// CreateFlightInput carries the raw field values; form posts deliver everything as text.
type CreateFlightInput struct {
	DepartAirport     string
	DestAirport       string
	FlightDate        string
	EconomyAvailable  string
	EconomyCost       string
	BusinessAvailable string
	BusinessCost      string
}

type UpdateCostsInput struct {
	BusinessCost *float64
	EconomyCost  *float64
}

type FlightDetail struct {
	Flight   *domain.Flight
	Bookings []domain.FlightPassenger
}

type DeleteOutcome struct {
	Deleted bool
	Reason  string
}

type FlightService struct {
	flights  repository.FlightRepository
	bookings repository.BookingRepository
	cache    FlightCache
	producer Producer
	topic    string
}

type Option func(*FlightService)

func WithCache(cache FlightCache) Option {
	return func(s *FlightService) {
		s.cache = cache
	}
}

func WithEvents(producer Producer, topic string) Option {
	return func(s *FlightService) {
		s.producer = producer
		s.topic = topic
	}
}

func NewFlightService(flights repository.FlightRepository, bookings repository.BookingRepository, opts ...Option) *FlightService {
	s := &FlightService{flights: flights, bookings: bookings}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FlightService) Search(ctx context.Context, caller domain.Caller, raw query.RawFilter) ([]domain.FlightSummary, error) {
	if err := policy.Authorize(caller, policy.ListFlights); err != nil {
		return nil, err
	}
	filter, err := query.Parse(raw)
	if err != nil {
		return nil, err
	}

	var (
		gen       int64
		cacheable bool
	)
	if s.cache != nil {
		cached, g, err := s.cache.GetFlights(ctx, filter)
		if err != nil {
			log.WithError(err).Warn("flight cache read failed")
		} else if cached != nil {
			metrics.FlightCacheHits.Inc()
			return cached, nil
		} else {
			gen, cacheable = g, true
		}
		metrics.FlightCacheMisses.Inc()
	}

	found, err := s.flights.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search flights: %w", err)
	}
	// the result is written under the generation seen before the read
	if cacheable {
		if err := s.cache.SetFlights(ctx, gen, filter, found); err != nil {
			log.WithError(err).Warn("flight cache write failed")
		}
	}
	return found, nil
}

// Get returns the flight; admins also receive the passenger list.
func (s *FlightService) Get(ctx context.Context, caller domain.Caller, id int64) (*FlightDetail, error) {
	if err := policy.Authorize(caller, policy.ViewFlight); err != nil {
		return nil, err
	}
	flight, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &FlightDetail{Flight: flight}
	if policy.Allowed(caller.Role, policy.ViewFlightBookings) {
		passengers, err := s.bookings.ListByFlight(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("list passengers: %w", err)
		}
		detail.Bookings = passengers
	}
	return detail, nil
}

func (s *FlightService) Create(ctx context.Context, caller domain.Caller, input CreateFlightInput) (*domain.Flight, error) {
	if err := policy.Authorize(caller, policy.CreateFlight); err != nil {
		return nil, err
	}
	flight, err := parseFlight(input)
	if err != nil {
		return nil, err
	}
	if err := s.flights.Create(ctx, flight); err != nil {
		return nil, fmt.Errorf("create flight: %w", err)
	}

	log.WithFields(log.Fields{
		"flight_id": flight.ID,
		"route":     flight.DepartAirport + "-" + flight.DestAirport,
		"admin":     caller.Username,
	}).Info("flight created")
	s.invalidate(ctx)
	s.publish(ctx, kafka.NewFlightEvent(kafka.EventFlightCreated, flight.ID, flight.DepartAirport, flight.DestAirport))
	return flight, nil
}

func parseFlight(in CreateFlightInput) (*domain.Flight, error) {
	var (
		f   domain.Flight
		err error
	)
	if f.DepartAirport, err = domain.RequireText("departAirport", in.DepartAirport); err != nil {
		return nil, err
	}
	if f.DestAirport, err = domain.RequireText("destAirport", in.DestAirport); err != nil {
		return nil, err
	}
	if f.FlightDate, err = domain.ParseFlightDate("flightDate", in.FlightDate); err != nil {
		return nil, err
	}
	if f.EconomyAvailable, err = domain.ParseCount("economyAvailableTickets", in.EconomyAvailable); err != nil {
		return nil, err
	}
	if f.EconomyCost, err = domain.ParseCost("economyTicketCost", in.EconomyCost); err != nil {
		return nil, err
	}
	if f.BusinessAvailable, err = domain.ParseCount("businessAvailableTickets", in.BusinessAvailable); err != nil {
		return nil, err
	}
	if f.BusinessCost, err = domain.ParseCost("businessTicketCost", in.BusinessCost); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FlightService) UpdateCosts(ctx context.Context, caller domain.Caller, id int64, input UpdateCostsInput) (*domain.Flight, error) {
	if err := policy.Authorize(caller, policy.UpdateFlight); err != nil {
		return nil, err
	}
	if input.BusinessCost == nil {
		return nil, domain.NewValidationError("businessTicketCost", "is required")
	}
	if input.EconomyCost == nil {
		return nil, domain.NewValidationError("economyTicketCost", "is required")
	}
	business, err := domain.CheckCost("businessTicketCost", *input.BusinessCost)
	if err != nil {
		return nil, err
	}
	economy, err := domain.CheckCost("economyTicketCost", *input.EconomyCost)
	if err != nil {
		return nil, err
	}

	updated, err := s.flights.UpdateCosts(ctx, id, business, economy)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"flight_id": id, "admin": caller.Username}).Info("flight costs updated")
	return updated, nil
}

// Delete refuses, without error, to remove a flight that still has bookings.
func (s *FlightService) Delete(ctx context.Context, caller domain.Caller, id int64) (DeleteOutcome, error) {
	if err := policy.Authorize(caller, policy.DeleteFlight); err != nil {
		return DeleteOutcome{}, err
	}
	err := s.flights.Delete(ctx, id)
	switch {
	case errors.Is(err, domain.ErrFlightHasBookings):
		log.WithField("flight_id", id).Warn("flight delete refused: bookings exist")
		return DeleteOutcome{Reason: "there are bookings for this flight"}, nil
	case err != nil:
		return DeleteOutcome{}, err
	}

	log.WithFields(log.Fields{"flight_id": id, "admin": caller.Username}).Info("flight deleted")
	s.invalidate(ctx)
	s.publish(ctx, kafka.NewFlightEvent(kafka.EventFlightDeleted, id, "", ""))
	return DeleteOutcome{Deleted: true}, nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		log.WithError(err).Warn("flight cache invalidation failed")
	}
}

func (s *FlightService) publish(ctx context.Context, event kafka.FlightEvent) {
	if s.producer == nil || s.topic == "" {
		return
	}
	if err := s.producer.Publish(ctx, s.topic, kafka.FlightKey(event.FlightID), event); err != nil {
		log.WithError(err).WithField("type", event.Type).Warn("failed to publish flight event")
	}
}

var _ FlightUseCase = (*FlightService)(nil)
