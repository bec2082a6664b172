package entity

import "time"

// Flight is one directional segment as reported by the remote API.
// RemoteID is unique across the table.
type Flight struct {
	ID            int64
	AirlineID     int64
	AirportFromID int64
	AirportToID   int64
	DepartureUTC  time.Time
	ArrivalUTC    time.Time
	FlightNumber  int64
	RemoteID      string
}

// Route is a priced, bookable itinerary. Price is in minor currency units.
type Route struct {
	ID                  int64
	BookingToken        string
	Price               int64
	SubscriptionFetchID int64
}

// RouteFlight links a flight into a route. IsReturn marks the return leg.
type RouteFlight struct {
	ID       int64
	FlightID int64
	RouteID  int64
	IsReturn bool
}
