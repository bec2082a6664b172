package usecase

import (
	"context"
	"time"

	"github.com/taesko/freefall/internal/domain/entity"
	"github.com/taesko/freefall/internal/domain/repository"
	"github.com/taesko/freefall/pkg/logger"
	"github.com/taesko/freefall/pkg/metrics"
)

// BillingLedger charges subscribers the fetch tax
type BillingLedger struct {
	billingRepo repository.BillingRepository
	tax         int64
	metrics     *metrics.Metrics
	logger      logger.Logger
	now         func() time.Time
}

// NewBillingLedger creates a new billing ledger. tax is in minor units.
func NewBillingLedger(billingRepo repository.BillingRepository, tax int64, m *metrics.Metrics, logger logger.Logger) *BillingLedger {
	return &BillingLedger{
		billingRepo: billingRepo,
		tax:         tax,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// Charge debits every funded, unexpired subscriber of sf's subscription and
// returns the charged user ids.
func (b *BillingLedger) Charge(ctx context.Context, sf entity.SubscriptionFetch) ([]int64, error) {
	charged, err := b.billingRepo.ChargeFetchTax(ctx, sf, b.tax, b.now())
	if err != nil {
		return nil, err
	}

	b.metrics.UsersCharged.Add(float64(len(charged)))
	b.metrics.RowsInserted.WithLabelValues("account_transfers").Add(float64(len(charged)))
	b.logger.Info("Charged fetch tax",
		"subscription_fetch_id", sf.ID,
		"subscription_id", sf.SubscriptionID,
		"tax", b.tax,
		"users", len(charged))
	return charged, nil
}
