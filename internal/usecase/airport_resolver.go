package usecase

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/taesko/freefall/internal/domain/apperr"
	"github.com/taesko/freefall/internal/domain/entity"
	"github.com/taesko/freefall/internal/domain/repository"
	"github.com/taesko/freefall/pkg/logger"
	"github.com/taesko/freefall/pkg/metrics"
)

// AirportResolver maps IATA codes to airport ids, creating missing airports
// from the remote locations API.
type AirportResolver struct {
	airportRepo repository.AirportRepository
	api         repository.FlightAPI
	metrics     *metrics.Metrics
	logger      logger.Logger

	mu    sync.RWMutex
	cache map[string]int64
	calls singleflight.Group
}

// NewAirportResolver creates a new airport resolver
func NewAirportResolver(
	airportRepo repository.AirportRepository,
	api repository.FlightAPI,
	m *metrics.Metrics,
	logger logger.Logger,
) *AirportResolver {
	return &AirportResolver{
		airportRepo: airportRepo,
		api:         api,
		metrics:     m,
		logger:      logger,
		cache:       make(map[string]int64),
	}
}

// Resolve returns the id of the airport with the given IATA code.
// Concurrent calls for one code share a single lookup.
func (r *AirportResolver) Resolve(ctx context.Context, iataCode string) (int64, error) {
	if id, ok := r.cached(iataCode); ok {
		return id, nil
	}

	v, err, _ := r.calls.Do(iataCode, func() (interface{}, error) {
		if id, ok := r.cached(iataCode); ok {
			return id, nil
		}
		id, err := r.resolve(ctx, iataCode)
		if err != nil {
			return int64(0), err
		}
		r.mu.Lock()
		r.cache[iataCode] = id
		r.mu.Unlock()
		return id, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (r *AirportResolver) cached(iataCode string) (int64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.cache[iataCode]
	return id, ok
}

func (r *AirportResolver) resolve(ctx context.Context, iataCode string) (int64, error) {
	id, found, err := r.airportRepo.FindIDByIATA(ctx, iataCode)
	if err != nil {
		return 0, err
	}
	if found {
		return id, nil
	}

	locations, err := r.api.LookupAirports(ctx, iataCode)
	if err != nil {
		return 0, err
	}
	if len(locations) != 1 {
		return 0, apperr.Peer("resolve_airport", "expected one location for %s, got %d", iataCode, len(locations))
	}
	location := locations[0]
	if location.Code != iataCode {
		return 0, apperr.Peer("resolve_airport", "location search for %s returned %s", iataCode, location.Code)
	}

	airport := &entity.Airport{
		IATACode: iataCode,
		Name:     entity.AirportDisplayName(location.Name, location.Code),
	}
	created, err := r.airportRepo.CreateIfAbsent(ctx, airport)
	if err != nil {
		return 0, err
	}
	if created {
		r.metrics.RowsInserted.WithLabelValues("airports").Inc()
		r.logger.Info("Inserted airport", "iata_code", iataCode, "name", airport.Name)
		return airport.ID, nil
	}

	// Another writer inserted it between our lookup and insert.
	id, found, err = r.airportRepo.FindIDByIATA(ctx, iataCode)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, apperr.Internal("resolve_airport", "airport %s missing after insert", iataCode)
	}
	return id, nil
}
