package domain

import (
	"fmt"
	"time"
)

type TicketClass string

const (
	TicketEconomy  TicketClass = "economy"
	TicketBusiness TicketClass = "business"
)

func ParseTicketClass(s string) (TicketClass, error) {
	switch TicketClass(s) {
	case TicketEconomy, TicketBusiness:
		return TicketClass(s), nil
	}
	return "", NewValidationError("ticketType", "ticket type must be business or economy")
}

type Flight struct {
	ID                int64
	DepartAirport     string
	DestAirport       string
	FlightDate        time.Time
	EconomyAvailable  int
	EconomyCost       float64
	EconomyCapacity   int
	BusinessAvailable int
	BusinessCost      float64
	BusinessCapacity  int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (f *Flight) Available(class TicketClass) int {
	if class == TicketBusiness {
		return f.BusinessAvailable
	}
	return f.EconomyAvailable
}

func (f *Flight) Cost(class TicketClass) float64 {
	if class == TicketBusiness {
		return f.BusinessCost
	}
	return f.EconomyCost
}

// FlightSummary is the listing projection returned by searches.
type FlightSummary struct {
	ID            int64     `json:"id"`
	DepartAirport string    `json:"departAirport"`
	DestAirport   string    `json:"destAirport"`
	FlightDate    time.Time `json:"flightDate"`
}

type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterRouteAndDate
	FilterRoute
	FilterDate
)

// FlightFilter is the canonical search filter. Only the fields used by Kind are set.
type FlightFilter struct {
	Kind          FilterKind
	DepartAirport string
	DestAirport   string
	FlightDate    time.Time
}

func (f FlightFilter) Key() string {
	switch f.Kind {
	case FilterRouteAndDate:
		return fmt.Sprintf("route:%q|%q:date:%s", f.DepartAirport, f.DestAirport, f.FlightDate.Format(DateLayout))
	case FilterRoute:
		return fmt.Sprintf("route:%q|%q", f.DepartAirport, f.DestAirport)
	case FilterDate:
		return "date:" + f.FlightDate.Format(DateLayout)
	default:
		return "all"
	}
}
