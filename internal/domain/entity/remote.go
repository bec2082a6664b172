package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Remote* types are produced only by the validating parse at the API
// boundary, so code downstream of it can trust their shape.

// RemoteFlight is one flight segment inside a remote route.
type RemoteFlight struct {
	ID           string
	FlightNumber int64
	DepartureUTC time.Time
	ArrivalUTC   time.Time
	FlyFrom      string
	FlyTo        string
	Airline      string
	Return       bool
}

// Validate checks the rules a segment must satisfy beyond JSON typing.
func (f RemoteFlight) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("flight id is empty")
	}
	if f.FlyFrom == "" || f.FlyTo == "" {
		return fmt.Errorf("flight %s: empty endpoint", f.ID)
	}
	if f.FlyFrom == f.FlyTo {
		return fmt.Errorf("flight %s: expected different values for flyFrom and flyTo, got %s and %s", f.ID, f.FlyFrom, f.FlyTo)
	}
	if f.Airline == "" {
		return fmt.Errorf("flight %s: empty airline", f.ID)
	}
	return nil
}

// RemoteRoute is one bookable itinerary from a search page.
type RemoteRoute struct {
	BookingToken string
	Price        decimal.Decimal
	Flights      []RemoteFlight
}

// Validate checks the route and every contained flight.
func (r RemoteRoute) Validate() error {
	if r.BookingToken == "" {
		return fmt.Errorf("route booking_token is empty")
	}
	if !r.Price.IsInteger() {
		return fmt.Errorf("route price %s is not a whole currency amount", r.Price)
	}
	if r.Price.IsNegative() {
		return fmt.Errorf("route price %s is negative", r.Price)
	}
	if len(r.Flights) == 0 {
		return fmt.Errorf("route has no flights")
	}
	for _, f := range r.Flights {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SearchPage is one page of the flight search.
type SearchPage struct {
	Currency string
	Routes   []RemoteRoute
	HasNext  bool
	Raw      []byte
}

// RemoteLocation is an airport as listed by the locations API.
type RemoteLocation struct {
	Code string
	Name string
}

// RemoteAirline is one entry of the airline listing. Code may be
// NoAirlineCode.
type RemoteAirline struct {
	Code string
	Name string
}

// SearchQuery describes one page request.
type SearchQuery struct {
	FlyFrom  string
	FlyTo    string
	DateFrom time.Time
	DateTo   time.Time
	Offset   int
	Limit    int
}

var minorUnitsPerWhole = decimal.NewFromInt(100)

// ToMinorUnits converts a whole-unit price into minor units (cents).
// Fractional input is refused rather than rounded.
func ToMinorUnits(price decimal.Decimal) (int64, error) {
	if !price.IsInteger() {
		return 0, fmt.Errorf("price %s has a fractional part", price)
	}
	minor := price.Mul(minorUnitsPerWhole)
	if !minor.Equal(decimal.NewFromInt(minor.IntPart())) {
		return 0, fmt.Errorf("price %s overflows minor units", price)
	}
	return minor.IntPart(), nil
}
