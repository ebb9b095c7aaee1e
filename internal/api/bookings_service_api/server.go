package bookings_service_api

import (
	"context"
	"time"

	"github.com/Domenick1991/digitalairlines/internal/api/rpc"
	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/Domenick1991/digitalairlines/internal/service/booking"
)

// Server exposes the traveller booking operations over gRPC.
type Server struct {
	bookings booking.BookingUseCase
}

func NewServer(bookings booking.BookingUseCase) *Server {
	return &Server{bookings: bookings}
}

func (s *Server) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*BookingResponse, error) {
	created, err := s.bookings.Create(ctx, rpc.CallerFrom(ctx), req.FlightID, booking.CreateBookingInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		PassportNo: req.PassportNo,
		BirthDate:  req.BirthDate,
		Email:      req.Email,
		TicketType: req.TicketType,
	})
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &BookingResponse{Booking: toBookingMessage(created)}, nil
}

func (s *Server) GetBooking(ctx context.Context, req *GetBookingRequest) (*BookingResponse, error) {
	b, err := s.bookings.Get(ctx, rpc.CallerFrom(ctx), req.ID)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &BookingResponse{Booking: toBookingMessage(b)}, nil
}

func (s *Server) ListBookings(ctx context.Context, _ *ListBookingsRequest) (*ListBookingsResponse, error) {
	list, err := s.bookings.ListMine(ctx, rpc.CallerFrom(ctx))
	if err != nil {
		return nil, rpc.Status(err)
	}
	resp := &ListBookingsResponse{Bookings: make([]*Booking, 0, len(list))}
	for i := range list {
		resp.Bookings = append(resp.Bookings, toBookingMessage(&list[i]))
	}
	return resp, nil
}

func (s *Server) CancelBooking(ctx context.Context, req *CancelBookingRequest) (*CancelBookingResponse, error) {
	deleted, err := s.bookings.Cancel(ctx, rpc.CallerFrom(ctx), req.ID)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &CancelBookingResponse{
		Message: "Booking was deleted successfully!",
		Booking: toBookingMessage(deleted),
	}, nil
}

func toBookingMessage(b *domain.Booking) *Booking {
	if b == nil {
		return nil
	}
	return &Booking{
		ID:            b.ID,
		FlightID:      b.FlightID,
		FirstName:     b.Traveller.FirstName,
		LastName:      b.Traveller.LastName,
		PassportNo:    b.Traveller.PassportNo,
		BirthDate:     formatDate(b.Traveller.BirthDate),
		Email:         b.Email(),
		TicketType:    string(b.TicketType),
		DepartAirport: b.DepartAirport,
		DestAirport:   b.DestAirport,
		FlightDate:    formatDate(b.FlightDate),
		TicketCost:    b.TicketCost,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}

var _ BookingsServiceServer = (*Server)(nil)
