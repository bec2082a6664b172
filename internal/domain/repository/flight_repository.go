package repository

import (
	"context"

	"github.com/taesko/freefall/internal/domain/entity"
)

// FlightRepository defines the interface for flight operations
type FlightRepository interface {
	// FindIDByRemoteID expects exactly one flight with the remote id.
	FindIDByRemoteID(ctx context.Context, remoteID string) (int64, error)
	CreateIfAbsent(ctx context.Context, flight *entity.Flight) (bool, error)
}

// RouteRepository defines the interface for route operations
type RouteRepository interface {
	Create(ctx context.Context, route *entity.Route) error
	AddFlight(ctx context.Context, link *entity.RouteFlight) error
}
