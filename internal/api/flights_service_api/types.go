package flights_service_api

import "github.com/Domenick1991/digitalairlines/internal/domain"

// SearchFlightsRequest mirrors the query parameters of GET /flights. Absent
// and blank fields are treated alike.
type SearchFlightsRequest struct {
	DepartAirport *string `json:"departAirport,omitempty"`
	DestAirport   *string `json:"destAirport,omitempty"`
	FlightDate    *string `json:"flightDate,omitempty"`
}

type FlightSummary struct {
	ID            int64  `json:"id"`
	DepartAirport string `json:"departAirport"`
	DestAirport   string `json:"destAirport"`
	FlightDate    string `json:"flightDate"`
}

type SearchFlightsResponse struct {
	Flights []FlightSummary `json:"flights"`
}

type GetFlightRequest struct {
	ID int64 `json:"id"`
}

type Flight struct {
	ID                       int64   `json:"id"`
	DepartAirport            string  `json:"departAirport"`
	DestAirport              string  `json:"destAirport"`
	FlightDate               string  `json:"flightDate"`
	EconomyAvailableTickets  int     `json:"economyAvailableTickets"`
	EconomyTicketCost        float64 `json:"economyTicketCost"`
	BusinessAvailableTickets int     `json:"businessAvailableTickets"`
	BusinessTicketCost       float64 `json:"businessTicketCost"`
}

type GetFlightResponse struct {
	Flight   *Flight                  `json:"flight"`
	Bookings []domain.FlightPassenger `json:"bookings,omitempty"`
}
