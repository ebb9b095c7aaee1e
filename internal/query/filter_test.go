package query

import (
	"net/url"
	"testing"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func TestParse_Combinations(t *testing.T) {
	testCases := []struct {
		name  string
		raw   RawFilter
		kind  domain.FilterKind
		valid bool
	}{
		{"no filters", RawFilter{}, domain.FilterAll, true},
		{"all three", RawFilter{str("ATH"), str("BCN"), str("2023-6-30")}, domain.FilterRouteAndDate, true},
		{"airports only", RawFilter{str("ATH"), str("BCN"), nil}, domain.FilterRoute, true},
		{"date only", RawFilter{nil, nil, str("2023-06-30")}, domain.FilterDate, true},
		{"depart only", RawFilter{str("ATH"), nil, nil}, 0, false},
		{"dest only", RawFilter{nil, str("BCN"), nil}, 0, false},
		{"depart and date", RawFilter{str("ATH"), nil, str("2023-6-30")}, 0, false},
		{"dest and date", RawFilter{nil, str("BCN"), str("2023-6-30")}, 0, false},
		{"blank values are absent", RawFilter{str(" "), str(""), nil}, domain.FilterAll, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Parse(tc.raw)
			if !tc.valid {
				require.Error(t, err)
				assert.True(t, domain.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.kind, f.Kind)
		})
	}
}

func TestParse_BadDate(t *testing.T) {
	_, err := Parse(RawFilter{FlightDate: str("tomorrow")})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestParse_CanonicalValues(t *testing.T) {
	f, err := Parse(RawFilter{str(" ATH "), str("BCN"), str("2023-6-30")})
	require.NoError(t, err)
	assert.Equal(t, "ATH", f.DepartAirport)
	assert.Equal(t, `route:"ATH"|"BCN":date:2023-06-30`, f.Key())
}

func TestFromValues(t *testing.T) {
	v, err := url.ParseQuery("departAirport=ATH&flightDate=2023-6-30")
	require.NoError(t, err)

	raw := FromValues(v)
	require.NotNil(t, raw.DepartAirport)
	assert.Equal(t, "ATH", *raw.DepartAirport)
	assert.Nil(t, raw.DestAirport)

	_, err = Parse(raw)
	assert.Error(t, err)
}
