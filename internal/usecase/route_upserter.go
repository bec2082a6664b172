package usecase

import (
	"context"

	"github.com/taesko/freefall/internal/domain/apperr"
	"github.com/taesko/freefall/internal/domain/entity"
	"github.com/taesko/freefall/internal/domain/repository"
	"github.com/taesko/freefall/pkg/metrics"
)

// RouteUpserter stores a priced route and links its flights
type RouteUpserter struct {
	routeRepo  repository.RouteRepository
	flightRepo repository.FlightRepository
	metrics    *metrics.Metrics
}

// NewRouteUpserter creates a new route upserter
func NewRouteUpserter(routeRepo repository.RouteRepository, flightRepo repository.FlightRepository, m *metrics.Metrics) *RouteUpserter {
	return &RouteUpserter{
		routeRepo:  routeRepo,
		flightRepo: flightRepo,
		metrics:    m,
	}
}

// Upsert inserts the route and one RouteFlight per segment, in segment order.
// Every segment must already be stored.
func (u *RouteUpserter) Upsert(ctx context.Context, r entity.RemoteRoute, subscriptionFetchID int64) error {
	price, err := entity.ToMinorUnits(r.Price)
	if err != nil {
		return apperr.PeerWrap("upsert_route", "route "+r.BookingToken, err)
	}

	route := &entity.Route{
		BookingToken:        r.BookingToken,
		Price:               price,
		SubscriptionFetchID: subscriptionFetchID,
	}
	if err := u.routeRepo.Create(ctx, route); err != nil {
		return err
	}
	u.metrics.RowsInserted.WithLabelValues("routes").Inc()

	for _, f := range r.Flights {
		flightID, err := u.flightRepo.FindIDByRemoteID(ctx, f.ID)
		if err != nil {
			return err
		}
		if err := u.routeRepo.AddFlight(ctx, &entity.RouteFlight{
			FlightID: flightID,
			RouteID:  route.ID,
			IsReturn: f.Return,
		}); err != nil {
			return err
		}
		u.metrics.RowsInserted.WithLabelValues("routes_flights").Inc()
	}
	return nil
}
