// Package memory keeps users, flights and bookings in process. It satisfies
// the same repository interfaces as the PostgreSQL stores, with one mutex
// standing in for row locks: a transaction holds it from begin to end.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/Domenick1991/digitalairlines/internal/repository"
)

type txKey struct{}

type Store struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]domain.User
	flights  map[int64]domain.Flight
	bookings map[int64]domain.Booking
	audit    map[string]domain.AuditEntry
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    make(map[int64]domain.User),
		flights:  make(map[int64]domain.Flight),
		bookings: make(map[int64]domain.Booking),
		audit:    make(map[string]domain.AuditEntry),
		now:      time.Now,
	}
}

func (s *Store) Users() repository.UserRepository          { return userRepo{s} }
func (s *Store) Flights() repository.FlightRepository      { return flightRepo{s} }
func (s *Store) Bookings() repository.BookingRepository    { return bookingRepo{s} }
func (s *Store) Inventory() repository.InventoryRepository { return inventoryRepo{s} }
func (s *Store) Audit() repository.AuditRepository         { return auditRepo{s} }

// WithinTransaction runs fn under the store lock. When fn fails or panics every
// map is restored to its state at begin; a panic is then re-raised.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nextID := s.nextID
	users, flights, bookings, audit := maps.Clone(s.users), maps.Clone(s.flights), maps.Clone(s.bookings), maps.Clone(s.audit)
	defer func() {
		p := recover()
		if err != nil || p != nil {
			s.nextID = nextID
			s.users, s.flights, s.bookings, s.audit = users, flights, bookings, audit
		}
		if p != nil {
			panic(p)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}

func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, user *domain.User) error {
	defer r.s.lock(ctx)()
	for _, u := range r.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return domain.ErrDuplicateUser
		}
	}
	user.ID = r.s.id()
	user.CreatedAt = r.s.now()
	user.BirthDate = dateOnly(user.BirthDate)
	r.s.users[user.ID] = *user
	return nil
}

func (r userRepo) find(ctx context.Context, match func(domain.User) bool) (*domain.User, error) {
	defer r.s.lock(ctx)()
	for _, u := range r.s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.Username == username })
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.Email == email })
}

func (r userRepo) Delete(ctx context.Context, id int64) error {
	defer r.s.lock(ctx)()
	u, ok := r.s.users[id]
	if !ok || u.Role != domain.RoleUser {
		return domain.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

type flightRepo struct{ s *Store }

func matches(f domain.Flight, filter domain.FlightFilter) bool {
	route := f.DepartAirport == filter.DepartAirport && f.DestAirport == filter.DestAirport
	date := f.FlightDate.Equal(dateOnly(filter.FlightDate))
	switch filter.Kind {
	case domain.FilterRouteAndDate:
		return route && date
	case domain.FilterRoute:
		return route
	case domain.FilterDate:
		return date
	default:
		return true
	}
}

func (r flightRepo) Find(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error) {
	defer r.s.lock(ctx)()
	out := make([]domain.FlightSummary, 0)
	for _, f := range r.s.flights {
		if matches(f, filter) {
			out = append(out, domain.FlightSummary{ID: f.ID, DepartAirport: f.DepartAirport, DestAirport: f.DestAirport, FlightDate: f.FlightDate})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FlightDate.Equal(out[j].FlightDate) {
			return out[i].FlightDate.Before(out[j].FlightDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r flightRepo) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	defer r.s.lock(ctx)()
	f, ok := r.s.flights[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &f, nil
}

func (r flightRepo) Create(ctx context.Context, f *domain.Flight) error {
	defer r.s.lock(ctx)()
	f.ID = r.s.id()
	f.FlightDate = dateOnly(f.FlightDate)
	f.EconomyCapacity, f.BusinessCapacity = f.EconomyAvailable, f.BusinessAvailable
	f.CreatedAt = r.s.now()
	f.UpdatedAt = f.CreatedAt
	r.s.flights[f.ID] = *f
	return nil
}

func (r flightRepo) UpdateCosts(ctx context.Context, id int64, businessCost, economyCost float64) (*domain.Flight, error) {
	defer r.s.lock(ctx)()
	f, ok := r.s.flights[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	f.BusinessCost, f.EconomyCost = businessCost, economyCost
	f.UpdatedAt = r.s.now()
	r.s.flights[id] = f
	return &f, nil
}

func (r flightRepo) Delete(ctx context.Context, id int64) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.flights[id]; !ok {
		return domain.ErrNotFound
	}
	for _, b := range r.s.bookings {
		if b.FlightID == id {
			return domain.ErrFlightHasBookings
		}
	}
	delete(r.s.flights, id)
	return nil
}

func (r flightRepo) AdjustAvailability(ctx context.Context, id int64, class domain.TicketClass, delta int) (*domain.Flight, error) {
	defer r.s.lock(ctx)()
	f, ok := r.s.flights[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	pool := &f.EconomyAvailable
	switch class {
	case domain.TicketEconomy:
	case domain.TicketBusiness:
		pool = &f.BusinessAvailable
	default:
		return nil, domain.NewValidationError("ticketType", fmt.Sprintf("unknown ticket class %q", class))
	}
	if *pool+delta < 0 {
		return nil, fmt.Errorf("%w: %s pool of flight %d cannot move by %d", domain.ErrConflict, class, id, delta)
	}
	*pool += delta
	f.UpdatedAt = r.s.now()
	r.s.flights[id] = f
	return &f, nil
}

type bookingRepo struct{ s *Store }

func (r bookingRepo) Insert(ctx context.Context, b *domain.Booking) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.flights[b.FlightID]; !ok {
		return domain.ErrNotFound
	}
	b.ID = r.s.id()
	b.CreatedAt = r.s.now()
	r.s.bookings[b.ID] = *b
	return nil
}

func (r bookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	defer r.s.lock(ctx)()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (r bookingRepo) sorted(match func(domain.Booking) bool) []domain.Booking {
	out := make([]domain.Booking, 0)
	for _, b := range r.s.bookings {
		if match(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r bookingRepo) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	defer r.s.lock(ctx)()
	return r.sorted(func(b domain.Booking) bool { return b.Email() == email }), nil
}

func (r bookingRepo) ListByFlight(ctx context.Context, flightID int64) ([]domain.FlightPassenger, error) {
	defer r.s.lock(ctx)()
	bookings := r.sorted(func(b domain.Booking) bool { return b.FlightID == flightID })
	out := make([]domain.FlightPassenger, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, domain.FlightPassenger{Name: b.Traveller.FirstName, LastName: b.Traveller.LastName, TicketType: b.TicketType})
	}
	return out, nil
}

func (r bookingRepo) DeleteOwned(ctx context.Context, id int64, email string) (*domain.Booking, error) {
	defer r.s.lock(ctx)()
	b, ok := r.s.bookings[id]
	if !ok || b.Email() != email {
		return nil, domain.ErrNotFound
	}
	delete(r.s.bookings, id)
	return &b, nil
}

type inventoryRepo struct{ s *Store }

func (r inventoryRepo) booked(flightID int64, class domain.TicketClass) int {
	n := 0
	for _, b := range r.s.bookings {
		if b.FlightID == flightID && b.TicketType == class {
			n++
		}
	}
	return n
}

func (r inventoryRepo) FindDrift(ctx context.Context) ([]domain.InventoryDrift, error) {
	defer r.s.lock(ctx)()
	out := make([]domain.InventoryDrift, 0)
	for _, f := range r.s.flights {
		pools := []domain.InventoryDrift{
			{FlightID: f.ID, Class: domain.TicketBusiness, Capacity: f.BusinessCapacity, Available: f.BusinessAvailable},
			{FlightID: f.ID, Class: domain.TicketEconomy, Capacity: f.EconomyCapacity, Available: f.EconomyAvailable},
		}
		for _, d := range pools {
			d.Booked = r.booked(f.ID, d.Class)
			if d.Capacity-d.Booked != d.Available {
				out = append(out, d)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FlightID != out[j].FlightID {
			return out[i].FlightID < out[j].FlightID
		}
		return out[i].Class < out[j].Class
	})
	return out, nil
}

func (r inventoryRepo) Repair(ctx context.Context, flightID int64, class domain.TicketClass) error {
	defer r.s.lock(ctx)()
	f, ok := r.s.flights[flightID]
	if !ok {
		return domain.ErrNotFound
	}
	switch class {
	case domain.TicketEconomy:
		f.EconomyAvailable = domain.InventoryDrift{Capacity: f.EconomyCapacity, Booked: r.booked(flightID, class)}.Expected()
	case domain.TicketBusiness:
		f.BusinessAvailable = domain.InventoryDrift{Capacity: f.BusinessCapacity, Booked: r.booked(flightID, class)}.Expected()
	default:
		return domain.NewValidationError("ticketType", fmt.Sprintf("unknown ticket class %q", class))
	}
	f.UpdatedAt = r.s.now()
	r.s.flights[flightID] = f
	return nil
}

type auditRepo struct{ s *Store }

func (r auditRepo) Append(ctx context.Context, e domain.AuditEntry) (bool, error) {
	defer r.s.lock(ctx)()
	if _, ok := r.s.audit[e.EventID]; ok {
		return false, nil
	}
	r.s.audit[e.EventID] = e
	return true, nil
}

var _ repository.Transactor = (*Store)(nil)
