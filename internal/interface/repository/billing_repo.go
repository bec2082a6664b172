package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/taesko/freefall/internal/domain/entity"
	"github.com/taesko/freefall/internal/domain/repository"
)

const deactivateSubscriptionsSQL = `
UPDATE users_subscriptions
SET active = ?
WHERE active = ?
  AND (user_id IN (SELECT id FROM users WHERE credits < ?) OR date_to < ?)`

const chargeSubscribersSQL = `
UPDATE users
SET credits = credits - ?
WHERE id IN (
  SELECT user_id FROM users_subscriptions
  WHERE active = ? AND subscription_id = ?
)
RETURNING id`

// GormBillingRepository implements the BillingRepository interface
type GormBillingRepository struct {
	gw *Gateway
}

// NewGormBillingRepository creates a new GORM billing repository
func NewGormBillingRepository(gw *Gateway) repository.BillingRepository {
	return &GormBillingRepository{
		gw: gw,
	}
}

// ChargeFetchTax deactivates unfunded or expired user subscriptions, then
// debits tax from every remaining subscriber of sf's subscription and
// records one account transfer per charged user. All of it commits or
// none of it does.
func (r *GormBillingRepository) ChargeFetchTax(ctx context.Context, sf entity.SubscriptionFetch, tax int64, now time.Time) ([]int64, error) {
	now = now.UTC()
	var charged []int64

	err := r.gw.Transaction(ctx, func(tx *Gateway) error {
		db := tx.DB(ctx)

		if err := db.Exec(deactivateSubscriptionsSQL, false, true, tax, now).Error; err != nil {
			return fmt.Errorf("deactivate users_subscriptions: %w", translateError(err))
		}

		var rows []struct{ ID int64 }
		if err := db.Raw(chargeSubscribersSQL, tax, true, sf.SubscriptionID).Scan(&rows).Error; err != nil {
			return fmt.Errorf("charge users: %w", translateError(err))
		}

		charged = make([]int64, 0, len(rows))
		for _, row := range rows {
			charged = append(charged, row.ID)
		}
		sort.Slice(charged, func(i, j int) bool { return charged[i] < charged[j] })

		for _, userID := range charged {
			transfer := AccountTransfers{
				UserID:         userID,
				TransferAmount: -tax,
				TransferredAt:  now,
			}
			if err := Insert(ctx, tx, &transfer); err != nil {
				return err
			}

			link := SubscriptionsFetchesAccountTransfers{
				AccountTransferID:   transfer.ID,
				SubscriptionFetchID: sf.ID,
			}
			if err := Insert(ctx, tx, &link); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return charged, nil
}
