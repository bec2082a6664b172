package repository

import (
	"context"

	"github.com/taesko/freefall/internal/domain/entity"
)

// AirlineRepository defines the interface for airline operations
type AirlineRepository interface {
	// FindIDByCode expects exactly one airline with the code.
	FindIDByCode(ctx context.Context, code string) (int64, error)
	CreateIfAbsent(ctx context.Context, airline *entity.Airline) (bool, error)
}
