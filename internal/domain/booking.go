package domain

import "time"

type Traveller struct {
	FirstName  string
	LastName   string
	PassportNo string
	BirthDate  time.Time
	Email      string
}

// Booking holds a traveller's ticket on one flight. Route, date and cost are
// copied from the flight at creation and never change afterwards.
type Booking struct {
	ID            int64
	FlightID      int64
	TicketType    TicketClass
	Traveller     Traveller
	DepartAirport string
	DestAirport   string
	FlightDate    time.Time
	TicketCost    float64
	CreatedAt     time.Time
}

// Email is the ownership key of the booking.
func (b *Booking) Email() string {
	return b.Traveller.Email
}

// FlightPassenger is the admin projection of a booking on a flight.
type FlightPassenger struct {
	Name       string      `json:"name"`
	LastName   string      `json:"lastName"`
	TicketType TicketClass `json:"ticketType"`
}
