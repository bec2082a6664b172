package repository

import (
	"context"
	"time"

	"github.com/taesko/freefall/internal/domain/entity"
)

// SubscriptionRepository defines the interface for subscription operations
type SubscriptionRepository interface {
	// ListActive returns subscriptions with at least one active subscriber.
	ListActive(ctx context.Context) ([]entity.Subscription, error)
}

// FetchRepository records runs and their per-subscription usage.
type FetchRepository interface {
	CreateFetch(ctx context.Context, at time.Time) (*entity.Fetch, error)
	CreateSubscriptionFetch(ctx context.Context, subscriptionID, fetchID int64) (*entity.SubscriptionFetch, error)
	IncrementAPIFetches(ctx context.Context, subscriptionFetchID int64) error
}

// BillingRepository debits the fetch tax.
type BillingRepository interface {
	// ChargeFetchTax runs in one transaction and returns the charged user ids.
	ChargeFetchTax(ctx context.Context, sf entity.SubscriptionFetch, tax int64, now time.Time) ([]int64, error)
}
