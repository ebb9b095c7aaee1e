package query

import (
	"net/url"
	"strings"

	"github.com/Domenick1991/digitalairlines/internal/domain"
)

// RawFilter holds the search parameters as received. A nil or blank value means absent.
type RawFilter struct {
	DepartAirport *string
	DestAirport   *string
	FlightDate    *string
}

func FromValues(v url.Values) RawFilter {
	return RawFilter{
		DepartAirport: lookup(v, "departAirport"),
		DestAirport:   lookup(v, "destAirport"),
		FlightDate:    lookup(v, "flightDate"),
	}
}

func lookup(v url.Values, key string) *string {
	if _, ok := v[key]; !ok {
		return nil
	}
	s := v.Get(key)
	return &s
}

func present(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	t := strings.TrimSpace(*s)
	return t, t != ""
}

// Parse accepts four combinations: nothing, both airports, both airports and a
// date, or a date alone. Everything else is rejected.
func Parse(raw RawFilter) (domain.FlightFilter, error) {
	dep, hasDep := present(raw.DepartAirport)
	dest, hasDest := present(raw.DestAirport)
	date, hasDate := present(raw.FlightDate)

	var f domain.FlightFilter
	switch {
	case !hasDep && !hasDest && !hasDate:
		f.Kind = domain.FilterAll
		return f, nil
	case hasDep && hasDest && hasDate:
		f.Kind = domain.FilterRouteAndDate
	case hasDep && hasDest:
		f.Kind = domain.FilterRoute
	case !hasDep && !hasDest && hasDate:
		f.Kind = domain.FilterDate
	default:
		return domain.FlightFilter{}, domain.NewValidationError("", "the query parameter is not valid")
	}

	f.DepartAirport, f.DestAirport = dep, dest
	if hasDate {
		d, err := domain.ParseFlightDate("flightDate", date)
		if err != nil {
			return domain.FlightFilter{}, err
		}
		f.FlightDate = d
	}
	return f, nil
}
