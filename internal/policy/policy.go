package policy

import (
	"fmt"

	"github.com/Domenick1991/digitalairlines/internal/domain"
)

type Operation string

const (
	ListFlights        Operation = "list_flights"
	ViewFlight         Operation = "view_flight"
	ViewFlightBookings Operation = "view_flight_bookings"
	CreateFlight       Operation = "create_flight"
	UpdateFlight       Operation = "update_flight"
	DeleteFlight       Operation = "delete_flight"
	CreateBooking      Operation = "create_booking"
	ViewBooking        Operation = "view_booking"
	CancelBooking      Operation = "cancel_booking"
	ListOwnBookings    Operation = "list_own_bookings"
	DeleteAccount      Operation = "delete_account"
)

var (
	users  = []domain.Role{domain.RoleUser}
	admins = []domain.Role{domain.RoleAdmin}
	both   = []domain.Role{domain.RoleUser, domain.RoleAdmin}
)

var table = map[Operation][]domain.Role{
	ListFlights:        both,
	ViewFlight:         both,
	ViewFlightBookings: admins,
	CreateFlight:       admins,
	UpdateFlight:       admins,
	DeleteFlight:       admins,
	CreateBooking:      users,
	ViewBooking:        users,
	CancelBooking:      users,
	ListOwnBookings:    users,
	DeleteAccount:      users,
}

func Allowed(role domain.Role, op Operation) bool {
	for _, r := range table[op] {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize checks authentication first, then the role table. Unknown operations are denied.
func Authorize(caller domain.Caller, op Operation) error {
	if !caller.Authenticated() {
		return domain.ErrUnauthenticated
	}
	if !Allowed(caller.Role, op) {
		return fmt.Errorf("%w: %s", domain.ErrForbidden, op)
	}
	return nil
}
