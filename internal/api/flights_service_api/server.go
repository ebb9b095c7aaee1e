package flights_service_api

import (
	"context"

	"github.com/Domenick1991/digitalairlines/internal/api/rpc"
	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/Domenick1991/digitalairlines/internal/query"
	"github.com/Domenick1991/digitalairlines/internal/service/flights"
)

// Server exposes the flight read operations over gRPC.
type Server struct {
	flights flights.FlightUseCase
}

func NewServer(flights flights.FlightUseCase) *Server {
	return &Server{flights: flights}
}

func (s *Server) SearchFlights(ctx context.Context, req *SearchFlightsRequest) (*SearchFlightsResponse, error) {
	list, err := s.flights.Search(ctx, rpc.CallerFrom(ctx), query.RawFilter{
		DepartAirport: req.DepartAirport,
		DestAirport:   req.DestAirport,
		FlightDate:    req.FlightDate,
	})
	if err != nil {
		return nil, rpc.Status(err)
	}
	resp := &SearchFlightsResponse{Flights: make([]FlightSummary, 0, len(list))}
	for _, f := range list {
		resp.Flights = append(resp.Flights, FlightSummary{
			ID:            f.ID,
			DepartAirport: f.DepartAirport,
			DestAirport:   f.DestAirport,
			FlightDate:    f.FlightDate.Format(domain.DateLayout),
		})
	}
	return resp, nil
}

func (s *Server) GetFlight(ctx context.Context, req *GetFlightRequest) (*GetFlightResponse, error) {
	detail, err := s.flights.Get(ctx, rpc.CallerFrom(ctx), req.ID)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return &GetFlightResponse{Flight: toFlightMessage(detail.Flight), Bookings: detail.Bookings}, nil
}

func toFlightMessage(f *domain.Flight) *Flight {
	if f == nil {
		return nil
	}
	return &Flight{
		ID:                       f.ID,
		DepartAirport:            f.DepartAirport,
		DestAirport:              f.DestAirport,
		FlightDate:               f.FlightDate.Format(domain.DateLayout),
		EconomyAvailableTickets:  f.EconomyAvailable,
		EconomyTicketCost:        f.EconomyCost,
		BusinessAvailableTickets: f.BusinessAvailable,
		BusinessTicketCost:       f.BusinessCost,
	}
}

var _ FlightsServiceServer = (*Server)(nil)
