package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/taesko/freefall/internal/domain/apperr"
	"github.com/taesko/freefall/internal/domain/entity"
	"github.com/taesko/freefall/internal/domain/repository"
)

// GormSubscriptionRepository implements the SubscriptionRepository interface
type GormSubscriptionRepository struct {
	gw *Gateway
}

// NewGormSubscriptionRepository creates a new GORM subscription repository
func NewGormSubscriptionRepository(gw *Gateway) repository.SubscriptionRepository {
	return &GormSubscriptionRepository{
		gw: gw,
	}
}

// ListActive returns the subscriptions that have at least one active user subscription
func (r *GormSubscriptionRepository) ListActive(ctx context.Context) ([]entity.Subscription, error) {
	subs, err := Select[Subscriptions](ctx, r.gw, []string{"id", "airport_from_id", "airport_to_id"})
	if err != nil {
		return nil, err
	}
	watched, err := SelectWhere[UsersSubscriptions](ctx, r.gw, []string{"subscription_id"}, Predicate{"active": true})
	if err != nil {
		return nil, err
	}

	active := make(map[int64]struct{}, len(watched))
	for _, us := range watched {
		active[us.SubscriptionID] = struct{}{}
	}

	result := make([]entity.Subscription, 0, len(active))
	for _, s := range subs {
		if _, ok := active[s.ID]; !ok {
			continue
		}
		result = append(result, entity.Subscription{
			ID:            s.ID,
			AirportFromID: s.AirportFromID,
			AirportToID:   s.AirportToID,
		})
	}
	return result, nil
}

// GormFetchRepository implements the FetchRepository interface
type GormFetchRepository struct {
	gw *Gateway
}

// NewGormFetchRepository creates a new GORM fetch repository
func NewGormFetchRepository(gw *Gateway) repository.FetchRepository {
	return &GormFetchRepository{
		gw: gw,
	}
}

// CreateFetch records the start of a run
func (r *GormFetchRepository) CreateFetch(ctx context.Context, at time.Time) (*entity.Fetch, error) {
	model := Fetches{FetchTime: at.UTC()}
	if err := Insert(ctx, r.gw, &model); err != nil {
		return nil, err
	}
	return &entity.Fetch{ID: model.ID, FetchTime: model.FetchTime}, nil
}

// CreateSubscriptionFetch ties a subscription to the run
func (r *GormFetchRepository) CreateSubscriptionFetch(ctx context.Context, subscriptionID, fetchID int64) (*entity.SubscriptionFetch, error) {
	model := SubscriptionsFetches{
		SubscriptionID: subscriptionID,
		FetchID:        fetchID,
	}
	if err := Insert(ctx, r.gw, &model); err != nil {
		return nil, err
	}
	return &entity.SubscriptionFetch{
		ID:              model.ID,
		SubscriptionID:  model.SubscriptionID,
		FetchID:         model.FetchID,
		APIFetchesCount: model.APIFetchesCount,
	}, nil
}

// IncrementAPIFetches bumps the page counter of a subscription fetch
func (r *GormFetchRepository) IncrementAPIFetches(ctx context.Context, subscriptionFetchID int64) error {
	result := r.gw.DB(ctx).
		Model(&SubscriptionsFetches{}).
		Where("id = ?", subscriptionFetchID).
		UpdateColumn("api_fetches_count", gorm.Expr("api_fetches_count + ?", 1))
	if result.Error != nil {
		return fmt.Errorf("increment api_fetches_count: %w", translateError(result.Error))
	}
	if result.RowsAffected != 1 {
		return apperr.Internal("increment_api_fetches", "expected one subscriptions_fetches row with id %d, got %d", subscriptionFetchID, result.RowsAffected)
	}
	return nil
}
