package api

import (
	"context"

	"github.com/Domenick1991/digitalairlines/internal/cache"
	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/Domenick1991/digitalairlines/internal/query"
	"github.com/Domenick1991/digitalairlines/internal/service/accounts"
	"github.com/Domenick1991/digitalairlines/internal/service/booking"
	"github.com/Domenick1991/digitalairlines/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) Search(ctx context.Context, caller domain.Caller, raw query.RawFilter) ([]domain.FlightSummary, error) {
	args := m.Called(ctx, caller, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightSummary), args.Error(1)
}

func (m *MockFlightUseCase) Get(ctx context.Context, caller domain.Caller, id int64) (*flights.FlightDetail, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flights.FlightDetail), args.Error(1)
}

func (m *MockFlightUseCase) Create(ctx context.Context, caller domain.Caller, input flights.CreateFlightInput) (*domain.Flight, error) {
	args := m.Called(ctx, caller, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) UpdateCosts(ctx context.Context, caller domain.Caller, id int64, input flights.UpdateCostsInput) (*domain.Flight, error) {
	args := m.Called(ctx, caller, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Delete(ctx context.Context, caller domain.Caller, id int64) (flights.DeleteOutcome, error) {
	args := m.Called(ctx, caller, id)
	return args.Get(0).(flights.DeleteOutcome), args.Error(1)
}

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Create(ctx context.Context, caller domain.Caller, flightID int64, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, caller, flightID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListMine(ctx context.Context, caller domain.Caller) ([]domain.Booking, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, caller domain.Caller, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListForFlight(ctx context.Context, caller domain.Caller, flightID int64) ([]domain.FlightPassenger, error) {
	args := m.Called(ctx, caller, flightID)
	return args.Get(0).([]domain.FlightPassenger), args.Error(1)
}

type MockAccountUseCase struct {
	mock.Mock
}

func (m *MockAccountUseCase) Register(ctx context.Context, input accounts.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAccountUseCase) Login(ctx context.Context, email, password string) (*accounts.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.LoginResult), args.Error(1)
}

func (m *MockAccountUseCase) Logout(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountUseCase) DeleteAccount(ctx context.Context, caller domain.Caller, sessionID string) error {
	return m.Called(ctx, caller, sessionID).Error(0)
}

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, username string) (domain.Caller, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(domain.Caller), args.Error(1)
}

type MockSessionReader struct {
	mock.Mock
}

func (m *MockSessionReader) Get(ctx context.Context, id string) (*cache.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cache.Session), args.Error(1)
}

type MockTokenParser struct {
	mock.Mock
}

func (m *MockTokenParser) Parse(raw string) (string, error) {
	args := m.Called(raw)
	return args.String(0), args.Error(1)
}

var (
	testUser  = domain.Caller{UserID: 1, Username: "user1", Email: "gp@gmail.com", Role: domain.RoleUser}
	testAdmin = domain.Caller{UserID: 4, Username: "admin1", Email: "np@gmail.com", Role: domain.RoleAdmin}
)

// asCaller builds a router whose requests all run as caller.
func asCaller(caller domain.Caller, prefix string, register func(*gin.RouterGroup), mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(callerKey, caller)
		c.Next()
	})
	register(router.Group(prefix, mw...))
	return router
}
