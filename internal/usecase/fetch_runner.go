package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taesko/freefall/internal/domain/apperr"
	"github.com/taesko/freefall/internal/domain/entity"
	"github.com/taesko/freefall/internal/domain/repository"
	"github.com/taesko/freefall/pkg/logger"
	"github.com/taesko/freefall/pkg/metrics"
)

// FetchRunner performs one complete fetch: airline sync, then billing and
// search for every active subscription.
type FetchRunner struct {
	api         repository.FlightAPI
	airlines    *AirlineResolver
	airportRepo repository.AirportRepository
	subRepo     repository.SubscriptionRepository
	fetchRepo   repository.FetchRepository
	billing     *BillingLedger
	search      *SearchOrchestrator
	metrics     *metrics.Metrics
	logger      logger.Logger
	now         func() time.Time
}

// NewFetchRunner creates a new fetch runner
func NewFetchRunner(
	api repository.FlightAPI,
	airlines *AirlineResolver,
	airportRepo repository.AirportRepository,
	subRepo repository.SubscriptionRepository,
	fetchRepo repository.FetchRepository,
	billing *BillingLedger,
	search *SearchOrchestrator,
	m *metrics.Metrics,
	logger logger.Logger,
) *FetchRunner {
	return &FetchRunner{
		api:         api,
		airlines:    airlines,
		airportRepo: airportRepo,
		subRepo:     subRepo,
		fetchRepo:   fetchRepo,
		billing:     billing,
		search:      search,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// Run performs one fetch. The first failure aborts it; rows committed
// before the failure stay.
func (r *FetchRunner) Run(ctx context.Context) error {
	log := r.logger.With("run_id", uuid.NewString())
	start := time.Now()

	err := r.run(ctx, log)

	r.metrics.RunDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		kind := apperr.KindOf(err)
		r.metrics.Runs.WithLabelValues("failure").Inc()
		r.metrics.ErrorsCount.WithLabelValues(kind).Inc()
		log.Error("Fetch run failed", "kind", kind, "error", err, "duration", time.Since(start))
		return err
	}
	r.metrics.Runs.WithLabelValues("success").Inc()
	log.Info("Fetch run finished", "duration", time.Since(start))
	return nil
}

func (r *FetchRunner) run(ctx context.Context, log logger.Logger) error {
	log.Info("Syncing airlines")
	airlines, err := r.api.ListAirlines(ctx)
	if err != nil {
		return fmt.Errorf("list airlines: %w", err)
	}
	if _, err := r.airlines.ResolveAll(ctx, airlines); err != nil {
		return fmt.Errorf("sync airlines: %w", err)
	}

	fetch, err := r.fetchRepo.CreateFetch(ctx, r.now().UTC())
	if err != nil {
		return fmt.Errorf("create fetch: %w", err)
	}
	log = log.With("fetch_id", fetch.ID)

	subs, err := r.subRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list subscriptions: %w", err)
	}
	log.Info("Processing subscriptions", "count", len(subs))

	for _, sub := range subs {
		if err := r.runSubscription(ctx, log, fetch.ID, sub); err != nil {
			return fmt.Errorf("subscription %d: %w", sub.ID, err)
		}
	}
	return nil
}

func (r *FetchRunner) runSubscription(ctx context.Context, log logger.Logger, fetchID int64, sub entity.Subscription) error {
	sf, err := r.fetchRepo.CreateSubscriptionFetch(ctx, sub.ID, fetchID)
	if err != nil {
		return err
	}

	charged, err := r.billing.Charge(ctx, *sf)
	if err != nil {
		return fmt.Errorf("charge fetch tax: %w", err)
	}
	if len(charged) == 0 {
		log.Info("No funded subscribers left, skipping search", "subscription_id", sub.ID)
		return nil
	}

	from, err := r.airportRepo.GetByID(ctx, sub.AirportFromID)
	if err != nil {
		return err
	}
	to, err := r.airportRepo.GetByID(ctx, sub.AirportToID)
	if err != nil {
		return err
	}

	pages, err := r.search.Run(ctx, entity.Endpoints{From: from.IATACode, To: to.IATACode}, sf.ID)
	if err != nil {
		return err
	}
	log.Info("Subscription fetched", "subscription_id", sub.ID, "from", from.IATACode, "to", to.IATACode, "pages", pages)
	return nil
}
