package domain

import "time"

// InventoryDrift is a ticket pool whose available count disagrees with
// capacity minus the bookings that reference it.
type InventoryDrift struct {
	FlightID  int64
	Class     TicketClass
	Capacity  int
	Booked    int
	Available int
}

func (d InventoryDrift) Expected() int {
	if n := d.Capacity - d.Booked; n > 0 {
		return n
	}
	return 0
}

type AuditEntry struct {
	EventID    string
	Type       string
	FlightID   int64
	BookingID  int64
	Payload    []byte
	OccurredAt time.Time
}
