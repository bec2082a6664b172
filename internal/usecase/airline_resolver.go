package usecase

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/taesko/freefall/internal/domain/apperr"
	"github.com/taesko/freefall/internal/domain/entity"
	"github.com/taesko/freefall/internal/domain/repository"
	"github.com/taesko/freefall/pkg/logger"
	"github.com/taesko/freefall/pkg/metrics"
	"github.com/taesko/freefall/pkg/taskgroup"
)

// AirlineResolver stores the remote airline listing
type AirlineResolver struct {
	airlineRepo     repository.AirlineRepository
	logoURLTemplate string
	concurrency     int
	metrics         *metrics.Metrics
	logger          logger.Logger
}

// NewAirlineResolver creates a new airline resolver. logoURLTemplate takes
// the airline code as its only verb.
func NewAirlineResolver(
	airlineRepo repository.AirlineRepository,
	logoURLTemplate string,
	concurrency int,
	m *metrics.Metrics,
	logger logger.Logger,
) *AirlineResolver {
	return &AirlineResolver{
		airlineRepo:     airlineRepo,
		logoURLTemplate: logoURLTemplate,
		concurrency:     concurrency,
		metrics:         m,
		logger:          logger,
	}
}

// ResolveAll inserts every listed airline not stored yet and returns how
// many were new. The NoAirlineCode placeholder is skipped.
func (r *AirlineResolver) ResolveAll(ctx context.Context, airlines []entity.RemoteAirline) (int, error) {
	for _, a := range airlines {
		if a.Code == entity.NoAirlineCode {
			continue
		}
		if !entity.ValidAirlineCode(a.Code) {
			return 0, apperr.Peer("resolve_airlines", "invalid airline code %q", a.Code)
		}
	}

	var created int64
	err := taskgroup.Each(ctx, r.concurrency, airlines, func(ctx context.Context, a entity.RemoteAirline) error {
		if a.Code == entity.NoAirlineCode {
			return nil
		}
		ok, err := r.airlineRepo.CreateIfAbsent(ctx, &entity.Airline{
			Code:    a.Code,
			Name:    entity.AirlineDisplayName(a.Name, a.Code),
			LogoURL: fmt.Sprintf(r.logoURLTemplate, a.Code),
		})
		if err != nil {
			return fmt.Errorf("insert airline %s: %w", a.Code, err)
		}
		if ok {
			atomic.AddInt64(&created, 1)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.metrics.RowsInserted.WithLabelValues("airlines").Add(float64(created))
	r.logger.Info("Airlines synced", "listed", len(airlines), "inserted", created)
	return int(created), nil
}
