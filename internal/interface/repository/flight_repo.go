package repository

import (
	"context"

	"github.com/taesko/freefall/internal/domain/apperr"
	"github.com/taesko/freefall/internal/domain/entity"
	"github.com/taesko/freefall/internal/domain/repository"
)

// GormFlightRepository implements the FlightRepository interface
type GormFlightRepository struct {
	gw *Gateway
}

// NewGormFlightRepository creates a new GORM flight repository
func NewGormFlightRepository(gw *Gateway) repository.FlightRepository {
	return &GormFlightRepository{
		gw: gw,
	}
}

// FindIDByRemoteID finds a flight id by the remote API's flight id
func (r *GormFlightRepository) FindIDByRemoteID(ctx context.Context, remoteID string) (int64, error) {
	rows, err := SelectWhere[Flights](ctx, r.gw, []string{"id"}, Predicate{"remote_id": remoteID})
	if err != nil {
		return 0, err
	}
	if len(rows) != 1 {
		return 0, apperr.Internal("find_flight", "expected exactly one flight with remote id %s, got %d", remoteID, len(rows))
	}
	return rows[0].ID, nil
}

// CreateIfAbsent inserts the flight unless its remote id is already stored
func (r *GormFlightRepository) CreateIfAbsent(ctx context.Context, flight *entity.Flight) (bool, error) {
	model := Flights{
		AirlineID:     flight.AirlineID,
		AirportFromID: flight.AirportFromID,
		AirportToID:   flight.AirportToID,
		DTime:         flight.DepartureUTC.UTC(),
		ATime:         flight.ArrivalUTC.UTC(),
		FlightNumber:  flight.FlightNumber,
		RemoteID:      flight.RemoteID,
	}

	created, err := InsertIfAbsent(ctx, r.gw, &model, Predicate{"remote_id": flight.RemoteID})
	if err != nil {
		return false, err
	}
	if created {
		flight.ID = model.ID
	}
	return created, nil
}

// GormRouteRepository implements the RouteRepository interface
type GormRouteRepository struct {
	gw *Gateway
}

// NewGormRouteRepository creates a new GORM route repository
func NewGormRouteRepository(gw *Gateway) repository.RouteRepository {
	return &GormRouteRepository{
		gw: gw,
	}
}

// Create inserts a route
func (r *GormRouteRepository) Create(ctx context.Context, route *entity.Route) error {
	model := Routes{
		BookingToken:        route.BookingToken,
		Price:               route.Price,
		SubscriptionFetchID: route.SubscriptionFetchID,
	}
	if err := Insert(ctx, r.gw, &model); err != nil {
		return err
	}
	route.ID = model.ID
	return nil
}

// AddFlight links a flight into a route
func (r *GormRouteRepository) AddFlight(ctx context.Context, link *entity.RouteFlight) error {
	model := RoutesFlights{
		FlightID: link.FlightID,
		RouteID:  link.RouteID,
		IsReturn: link.IsReturn,
	}
	if err := Insert(ctx, r.gw, &model); err != nil {
		return err
	}
	link.ID = model.ID
	return nil
}
