package entity

import (
	"time"
)

// ArchivedPage is a raw search response kept for replay and debugging.
type ArchivedPage struct {
	ID                  string    `json:"id,omitempty" bson:"_id,omitempty"`
	SubscriptionFetchID int64     `json:"subscriptionFetchId" bson:"subscriptionFetchId"`
	FlyFrom             string    `json:"flyFrom" bson:"flyFrom"`
	FlyTo               string    `json:"flyTo" bson:"flyTo"`
	Offset              int       `json:"offset" bson:"offset"`
	RouteCount          int       `json:"routeCount" bson:"routeCount"`
	HasNext             bool      `json:"hasNext" bson:"hasNext"`
	Body                string    `json:"body" bson:"body"`
	FetchedAt           time.Time `json:"fetchedAt" bson:"fetchedAt"`
}
