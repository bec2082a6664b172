package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/taesko/freefall/internal/domain/entity"
	"github.com/taesko/freefall/internal/domain/repository"
	"github.com/taesko/freefall/pkg/logger"
	"github.com/taesko/freefall/pkg/metrics"
	"github.com/taesko/freefall/pkg/taskgroup"
	"github.com/taesko/freefall/pkg/utils"
)

// SearchOptions tunes the paged search
type SearchOptions struct {
	RoutesLimit  int
	WindowMonths int
	Concurrency  int
}

// SearchOrchestrator pages through the flight search for one subscription
// and stores what it finds.
type SearchOrchestrator struct {
	api       repository.FlightAPI
	fetchRepo repository.FetchRepository
	archive   repository.PageArchive
	airports  *AirportResolver
	flights   *FlightUpserter
	routes    *RouteUpserter
	opts      SearchOptions
	metrics   *metrics.Metrics
	logger    logger.Logger
	now       func() time.Time
}

// NewSearchOrchestrator creates a new search orchestrator
func NewSearchOrchestrator(
	api repository.FlightAPI,
	fetchRepo repository.FetchRepository,
	archive repository.PageArchive,
	airports *AirportResolver,
	flights *FlightUpserter,
	routes *RouteUpserter,
	opts SearchOptions,
	m *metrics.Metrics,
	logger logger.Logger,
) *SearchOrchestrator {
	if opts.RoutesLimit < 1 {
		opts.RoutesLimit = 30
	}
	if opts.WindowMonths < 1 {
		opts.WindowMonths = 1
	}
	return &SearchOrchestrator{
		api:       api,
		fetchRepo: fetchRepo,
		archive:   archive,
		airports:  airports,
		flights:   flights,
		routes:    routes,
		opts:      opts,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// Run requests pages until the API reports no next page and returns how
// many pages were fetched.
func (o *SearchOrchestrator) Run(ctx context.Context, endpoints entity.Endpoints, subscriptionFetchID int64) (int, error) {
	from, to := utils.SearchWindow(o.now().UTC(), o.opts.WindowMonths)
	query := entity.SearchQuery{
		FlyFrom:  endpoints.From,
		FlyTo:    endpoints.To,
		DateFrom: from,
		DateTo:   to,
		Limit:    o.opts.RoutesLimit,
	}
	log := o.logger.With("subscription_fetch_id", subscriptionFetchID, "fly_from", endpoints.From, "fly_to", endpoints.To)

	pages := 0
	for {
		if err := o.fetchRepo.IncrementAPIFetches(ctx, subscriptionFetchID); err != nil {
			return pages, err
		}

		log.Info("Fetching search page", "offset", query.Offset, "limit", query.Limit)
		page, err := o.api.SearchFlights(ctx, query)
		if err != nil {
			return pages, fmt.Errorf("search %s-%s offset %d: %w", endpoints.From, endpoints.To, query.Offset, err)
		}
		pages++
		o.metrics.APIPages.Inc()

		o.archivePage(ctx, log, page, query, subscriptionFetchID)

		if err := o.storePage(ctx, log, page, subscriptionFetchID); err != nil {
			return pages, err
		}

		if !page.HasNext {
			log.Info("Search finished", "pages", pages)
			return pages, nil
		}
		query.Offset += query.Limit
	}
}

// storePage runs the three phases of a page. Each phase finishes before the
// next starts: flights need their airports, routes need their flights.
func (o *SearchOrchestrator) storePage(ctx context.Context, log logger.Logger, page *entity.SearchPage, subscriptionFetchID int64) error {
	flights, codes := collectFlights(page.Routes)

	log.Info("Resolving airports", "count", len(codes))
	if err := taskgroup.Each(ctx, o.opts.Concurrency, codes, func(ctx context.Context, code string) error {
		_, err := o.airports.Resolve(ctx, code)
		return err
	}); err != nil {
		return fmt.Errorf("resolve airports: %w", err)
	}

	var created int64
	log.Info("Inserting flights", "count", len(flights))
	if err := taskgroup.Each(ctx, o.opts.Concurrency, flights, func(ctx context.Context, f entity.RemoteFlight) error {
		ok, err := o.flights.Upsert(ctx, f)
		if ok {
			atomic.AddInt64(&created, 1)
		}
		return err
	}); err != nil {
		return fmt.Errorf("upsert flights: %w", err)
	}

	log.Info("Inserting routes", "count", len(page.Routes), "new_flights", created)
	if err := taskgroup.Each(ctx, o.opts.Concurrency, page.Routes, func(ctx context.Context, r entity.RemoteRoute) error {
		return o.routes.Upsert(ctx, r, subscriptionFetchID)
	}); err != nil {
		return fmt.Errorf("upsert routes: %w", err)
	}
	return nil
}

func (o *SearchOrchestrator) archivePage(ctx context.Context, log logger.Logger, page *entity.SearchPage, query entity.SearchQuery, subscriptionFetchID int64) {
	err := o.archive.Save(ctx, &entity.ArchivedPage{
		SubscriptionFetchID: subscriptionFetchID,
		FlyFrom:             query.FlyFrom,
		FlyTo:               query.FlyTo,
		Offset:              query.Offset,
		RouteCount:          len(page.Routes),
		HasNext:             page.HasNext,
		Body:                string(page.Raw),
		FetchedAt:           o.now().UTC(),
	})
	if err != nil {
		o.metrics.ErrorsCount.WithLabelValues("archive").Inc()
		log.Warn("Failed to archive search page", "offset", query.Offset, "error", err)
	}
}

// collectFlights returns the page's flights, first occurrence of each remote
// id only, and the sorted set of airport codes they touch.
func collectFlights(routes []entity.RemoteRoute) ([]entity.RemoteFlight, []string) {
	seen := make(map[string]struct{})
	airports := make(map[string]struct{})
	var flights []entity.RemoteFlight

	for _, r := range routes {
		for _, f := range r.Flights {
			if _, ok := seen[f.ID]; ok {
				continue
			}
			seen[f.ID] = struct{}{}
			flights = append(flights, f)
			airports[f.FlyFrom] = struct{}{}
			airports[f.FlyTo] = struct{}{}
		}
	}

	codes := make([]string, 0, len(airports))
	for code := range airports {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return flights, codes
}
