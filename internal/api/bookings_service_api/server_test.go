package bookings_service_api

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Domenick1991/digitalairlines/internal/api/rpc"
	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/Domenick1991/digitalairlines/internal/service/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightPassenger), args.Error(1)
}

var (
	user   = domain.Caller{UserID: 1, Username: "user1", Email: "gp@gmail.com", Role: domain.RoleUser}
	admin  = domain.Caller{UserID: 4, Username: "admin1", Email: "np@gmail.com", Role: domain.RoleAdmin}
	booked = &domain.Booking{
		ID:         3,
		FlightID:   1,
		TicketType: domain.TicketEconomy,
		Traveller: domain.Traveller{
			FirstName: "George", LastName: "Papadopoulos", PassportNo: "98765",
			BirthDate: time.Date(2002, 1, 1, 0, 0, 0, 0, time.UTC), Email: "gp@gmail.com",
		},
		DepartAirport: "ATH",
		DestAirport:   "BCN",
		FlightDate:    time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC),
		TicketCost:    75,
	}
)

func TestRegisterBookingsServiceServer(t *testing.T) {
	srv := grpc.NewServer()
	RegisterBookingsServiceServer(srv, NewServer(&MockBookingUseCase{}))

	info, ok := srv.GetServiceInfo()["airlines.v1.BookingsService"]
	require.True(t, ok)
	names := make([]string, 0, len(info.Methods))
	for _, m := range info.Methods {
		names = append(names, m.Name)
	}
	assert.ElementsMatch(t, []string{"CreateBooking", "GetBooking", "ListBookings", "CancelBooking"}, names)
}

func TestServer_CreateBooking(t *testing.T) {
	mockService := &MockBookingUseCase{}
	s := NewServer(mockService)

	input := booking.CreateBookingInput{
		FirstName: "George", LastName: "Papadopoulos", PassportNo: "98765",
		BirthDate: "2002-01-01", Email: "gp@gmail.com", TicketType: "economy",
	}
	mockService.On("Create", mock.Anything, user, int64(1), input).Return(booked, nil).Once()
	mockService.On("Create", mock.Anything, user, int64(1), input).Return(nil, domain.ErrNoSeats)
	mockService.On("Create", mock.Anything, admin, int64(1), input).Return(nil, domain.ErrForbidden)

	req := &CreateBookingRequest{
		FlightID: 1, FirstName: "George", LastName: "Papadopoulos", PassportNo: "98765",
		BirthDate: "2002-01-01", Email: "gp@gmail.com", TicketType: "economy",
	}

	resp, err := s.CreateBooking(rpc.WithCaller(context.Background(), user), req)
	require.NoError(t, err)
	assert.Equal(t, "2023-06-30", resp.Booking.FlightDate)
	assert.Equal(t, "2002-01-01", resp.Booking.BirthDate)
	assert.Equal(t, 75.0, resp.Booking.TicketCost)

	_, err = s.CreateBooking(rpc.WithCaller(context.Background(), user), req)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = s.CreateBooking(rpc.WithCaller(context.Background(), admin), req)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestServer_ListAndCancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	s := NewServer(mockService)
	ctx := rpc.WithCaller(context.Background(), user)

	mockService.On("ListMine", mock.Anything, user).Return([]domain.Booking{*booked}, nil)
	mockService.On("Cancel", mock.Anything, user, int64(3)).Return(booked, nil)
	mockService.On("Cancel", mock.Anything, user, int64(4)).Return(nil, domain.ErrNotFound)

	list, err := s.ListBookings(ctx, &ListBookingsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Bookings, 1)
	assert.Equal(t, int64(3), list.Bookings[0].ID)

	cancelled, err := s.CancelBooking(ctx, &CancelBookingRequest{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, "Booking was deleted successfully!", cancelled.Message)

	_, err = s.CancelBooking(ctx, &CancelBookingRequest{ID: 4})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestServer_GetBooking_Anonymous(t *testing.T) {
	mockService := &MockBookingUseCase{}
	mockService.On("Get", mock.Anything, domain.Caller{}, int64(3)).Return(nil, domain.ErrUnauthenticated)

	_, err := NewServer(mockService).GetBooking(context.Background(), &GetBookingRequest{ID: 3})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestUnaryHandler_Decodes(t *testing.T) {
	mockService := &MockBookingUseCase{}
	mockService.On("Get", mock.Anything, domain.Caller{}, int64(3)).Return(booked, nil)

	dec := func(v any) error { return json.Unmarshal([]byte(`{"id":3}`), v) }
	handler := unary("GetBooking", BookingsServiceServer.GetBooking)

	out, err := handler(NewServer(mockService), context.Background(), dec, nil)
	require.NoError(t, err)
	assert.Equal(t, "gp@gmail.com", out.(*BookingResponse).Booking.Email)
}
