package repository

import (
	"context"

	"github.com/taesko/freefall/internal/domain/apperr"
	"github.com/taesko/freefall/internal/domain/entity"
	"github.com/taesko/freefall/internal/domain/repository"
)

// GormAirlineRepository implements the AirlineRepository interface
type GormAirlineRepository struct {
	gw *Gateway
}

// NewGormAirlineRepository creates a new GORM airline repository
func NewGormAirlineRepository(gw *Gateway) repository.AirlineRepository {
	return &GormAirlineRepository{
		gw: gw,
	}
}

// FindIDByCode finds an airline id by code
func (r *GormAirlineRepository) FindIDByCode(ctx context.Context, code string) (int64, error) {
	rows, err := SelectWhere[Airlines](ctx, r.gw, []string{"id"}, Predicate{"code": code})
	if err != nil {
		return 0, err
	}
	if len(rows) != 1 {
		return 0, apperr.Internal("find_airline", "expected exactly one airline with code %s, got %d", code, len(rows))
	}
	return rows[0].ID, nil
}

// CreateIfAbsent inserts the airline unless its code is already stored
func (r *GormAirlineRepository) CreateIfAbsent(ctx context.Context, airline *entity.Airline) (bool, error) {
	model := Airlines{
		Code:    airline.Code,
		Name:    airline.Name,
		LogoURL: airline.LogoURL,
	}

	created, err := InsertIfAbsent(ctx, r.gw, &model, Predicate{"code": airline.Code})
	if err != nil {
		return false, err
	}
	if created {
		airline.ID = model.ID
	}
	return created, nil
}
