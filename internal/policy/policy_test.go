package policy

import (
	"testing"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize_Table(t *testing.T) {
	user := domain.Caller{Username: "user1", Role: domain.RoleUser}
	admin := domain.Caller{Username: "admin1", Role: domain.RoleAdmin}

	testCases := []struct {
		op         Operation
		userAllow  bool
		adminAllow bool
	}{
		{ListFlights, true, true},
		{ViewFlight, true, true},
		{ViewFlightBookings, false, true},
		{CreateFlight, false, true},
		{UpdateFlight, false, true},
		{DeleteFlight, false, true},
		{CreateBooking, true, false},
		{ViewBooking, true, false},
		{CancelBooking, true, false},
		{ListOwnBookings, true, false},
		{DeleteAccount, true, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.op), func(t *testing.T) {
			err := Authorize(user, tc.op)
			if tc.userAllow {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrForbidden)
			}

			err = Authorize(admin, tc.op)
			if tc.adminAllow {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrForbidden)
			}

			assert.ErrorIs(t, Authorize(domain.Caller{}, tc.op), domain.ErrUnauthenticated)
		})
	}
}

func TestAuthorize_UnknownOperation(t *testing.T) {
	err := Authorize(domain.Caller{Role: domain.RoleAdmin}, Operation("drop_tables"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
