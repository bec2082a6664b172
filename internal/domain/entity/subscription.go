package entity

import "time"

// Subscription is a directional airport pair users watch.
type Subscription struct {
	ID            int64
	AirportFromID int64
	AirportToID   int64
}

// Fetch is one top-level run.
type Fetch struct {
	ID        int64
	FetchTime time.Time
}

// SubscriptionFetch ties a subscription to a run. APIFetchesCount counts the
// search pages consumed for it.
type SubscriptionFetch struct {
	ID              int64
	SubscriptionID  int64
	FetchID         int64
	APIFetchesCount int64
}

// Endpoints are the IATA codes a subscription searches between.
type Endpoints struct {
	From string
	To   string
}

// User holds a credit balance in minor units.
type User struct {
	ID      int64
	Email   string
	Credits int64
}

// UserSubscription marks a user's subscription. DateTo bounds its validity;
// nil means open ended.
type UserSubscription struct {
	ID             int64
	UserID         int64
	SubscriptionID int64
	Active         bool
	DateFrom       *time.Time
	DateTo         *time.Time
}

// AccountTransfer is an immutable, signed credit movement.
type AccountTransfer struct {
	ID             int64
	UserID         int64
	TransferAmount int64
	TransferredAt  time.Time
}
