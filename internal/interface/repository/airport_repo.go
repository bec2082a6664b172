package repository

import (
	"context"

	"github.com/taesko/freefall/internal/domain/apperr"
	"github.com/taesko/freefall/internal/domain/entity"
	"github.com/taesko/freefall/internal/domain/repository"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	gw *Gateway
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(gw *Gateway) repository.AirportRepository {
	return &GormAirportRepository{
		gw: gw,
	}
}

// FindIDByIATA finds an airport id by its IATA code
func (r *GormAirportRepository) FindIDByIATA(ctx context.Context, iataCode string) (int64, bool, error) {
	rows, err := SelectWhere[Airports](ctx, r.gw, []string{"id"}, Predicate{"iata_code": iataCode})
	if err != nil {
		return 0, false, err
	}
	switch len(rows) {
	case 0:
		return 0, false, nil
	case 1:
		return rows[0].ID, true, nil
	default:
		return 0, false, apperr.Internal("find_airport", "expected at most one airport with code %s, got %d", iataCode, len(rows))
	}
}

// GetByID loads an airport
func (r *GormAirportRepository) GetByID(ctx context.Context, id int64) (*entity.Airport, error) {
	rows, err := SelectWhere[Airports](ctx, r.gw, []string{"id", "iata_code", "name"}, Predicate{"id": id})
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, apperr.Internal("get_airport", "expected exactly one airport with id %d, got %d", id, len(rows))
	}

	// Convert GORM model to domain entity
	return &entity.Airport{
		ID:       rows[0].ID,
		IATACode: rows[0].IATACode,
		Name:     rows[0].Name,
	}, nil
}

// CreateIfAbsent inserts the airport unless its code is already stored
func (r *GormAirportRepository) CreateIfAbsent(ctx context.Context, airport *entity.Airport) (bool, error) {
	model := Airports{
		IATACode: airport.IATACode,
		Name:     airport.Name,
	}

	created, err := InsertIfAbsent(ctx, r.gw, &model, Predicate{"iata_code": airport.IATACode})
	if err != nil {
		return false, err
	}
	if created {
		airport.ID = model.ID
	}
	return created, nil
}
