package usecase

import (
	"context"

	"github.com/taesko/freefall/internal/domain/apperr"
	"github.com/taesko/freefall/internal/domain/entity"
	"github.com/taesko/freefall/internal/domain/repository"
	"github.com/taesko/freefall/pkg/metrics"
)

// FlightUpserter stores remote flight segments once per remote id
type FlightUpserter struct {
	airports    *AirportResolver
	airlineRepo repository.AirlineRepository
	flightRepo  repository.FlightRepository
	metrics     *metrics.Metrics
}

// NewFlightUpserter creates a new flight upserter
func NewFlightUpserter(
	airports *AirportResolver,
	airlineRepo repository.AirlineRepository,
	flightRepo repository.FlightRepository,
	m *metrics.Metrics,
) *FlightUpserter {
	return &FlightUpserter{
		airports:    airports,
		airlineRepo: airlineRepo,
		flightRepo:  flightRepo,
		metrics:     m,
	}
}

// Upsert inserts the flight unless its remote id is already stored and
// reports whether it did.
func (u *FlightUpserter) Upsert(ctx context.Context, f entity.RemoteFlight) (bool, error) {
	if err := f.Validate(); err != nil {
		return false, apperr.PeerWrap("upsert_flight", "invalid flight", err)
	}

	fromID, err := u.airports.Resolve(ctx, f.FlyFrom)
	if err != nil {
		return false, err
	}
	toID, err := u.airports.Resolve(ctx, f.FlyTo)
	if err != nil {
		return false, err
	}
	airlineID, err := u.airlineRepo.FindIDByCode(ctx, f.Airline)
	if err != nil {
		return false, err
	}

	created, err := u.flightRepo.CreateIfAbsent(ctx, &entity.Flight{
		AirlineID:     airlineID,
		AirportFromID: fromID,
		AirportToID:   toID,
		DepartureUTC:  f.DepartureUTC,
		ArrivalUTC:    f.ArrivalUTC,
		FlightNumber:  f.FlightNumber,
		RemoteID:      f.ID,
	})
	if err != nil {
		return false, err
	}
	if created {
		u.metrics.RowsInserted.WithLabelValues("flights").Inc()
	}
	return created, nil
}
