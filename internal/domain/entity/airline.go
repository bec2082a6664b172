package entity

import (
	"fmt"
	"regexp"
)

// NoAirlineCode is what the remote API lists for self-operated or
// unknown carriers. It is never persisted.
const NoAirlineCode = "__"

var airlineCodePattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// Airline represents an airline entity
type Airline struct {
	ID      int64
	Code    string
	Name    string
	LogoURL string
}

// ValidAirlineCode reports whether code is an IATA-style airline designator.
func ValidAirlineCode(code string) bool {
	return airlineCodePattern.MatchString(code)
}

// AirlineDisplayName is the stored name for an airline from the listing.
func AirlineDisplayName(name, code string) string {
	return fmt.Sprintf("%s %s", name, code)
}
