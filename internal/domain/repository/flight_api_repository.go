package repository

import (
	"context"

	"github.com/taesko/freefall/internal/domain/entity"
)

// FlightAPI is the remote flight search, locations and airlines API.
type FlightAPI interface {
	SearchFlights(ctx context.Context, query entity.SearchQuery) (*entity.SearchPage, error)
	LookupAirports(ctx context.Context, term string) ([]entity.RemoteLocation, error)
	ListAirlines(ctx context.Context) ([]entity.RemoteAirline, error)
}
