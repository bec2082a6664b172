package entity

import "fmt"

// Airport is created lazily the first time a flight references its code
// and never changes afterwards.
type Airport struct {
	ID       int64
	IATACode string
	Name     string
}

// AirportDisplayName is the stored name for an airport fetched from the
// locations API.
func AirportDisplayName(name, code string) string {
	return fmt.Sprintf("%s, %s", name, code)
}
