package repository

import (
	"context"

	"github.com/taesko/freefall/internal/domain/entity"
)

// AirportRepository defines the interface for airport operations
type AirportRepository interface {
	// FindIDByIATA returns found=false when no airport has the code.
	FindIDByIATA(ctx context.Context, iataCode string) (id int64, found bool, err error)
	GetByID(ctx context.Context, id int64) (*entity.Airport, error)
	// CreateIfAbsent reports whether a new row was written.
	CreateIfAbsent(ctx context.Context, airport *entity.Airport) (bool, error)
}
