package bookings_service_api

type CreateBookingRequest struct {
	FlightID   int64  `json:"flightId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	PassportNo string `json:"passportNo"`
	BirthDate  string `json:"birthDate"`
	Email      string `json:"email"`
	TicketType string `json:"ticketType"`
}

type Booking struct {
	ID            int64   `json:"id"`
	FlightID      int64   `json:"flightId"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	PassportNo    string  `json:"passportNo"`
	BirthDate     string  `json:"birthDate"`
	Email         string  `json:"email"`
	TicketType    string  `json:"ticketType"`
	DepartAirport string  `json:"departAirport"`
	DestAirport   string  `json:"destAirport"`
	FlightDate    string  `json:"flightDate"`
	TicketCost    float64 `json:"ticketCost"`
}

type BookingResponse struct {
	Booking *Booking `json:"booking"`
}

type GetBookingRequest struct {
	ID int64 `json:"id"`
}

type ListBookingsRequest struct{}

type ListBookingsResponse struct {
	Bookings []*Booking `json:"bookings"`
}

type CancelBookingRequest struct {
	ID int64 `json:"id"`
}

type CancelBookingResponse struct {
	Message string   `json:"message"`
	Booking *Booking `json:"booking"`
}
