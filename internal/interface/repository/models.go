package repository

import "time"

// GORM models for the relational store. Schema ownership sits outside this
// service; the tags mirror the production schema so tests can AutoMigrate it.

// Airports GORM model for database mapping
type Airports struct {
	ID       int64  `gorm:"column:id;primaryKey"`
	IATACode string `gorm:"column:iata_code;size:3;not null;uniqueIndex"`
	Name     string `gorm:"column:name;not null"`
}

// TableName overrides the default table name
func (Airports) TableName() string { return "airports" }

// PrimaryKey returns the row id
func (a Airports) PrimaryKey() int64 { return a.ID }

// Airlines GORM model for database mapping
type Airlines struct {
	ID      int64  `gorm:"column:id;primaryKey"`
	Code    string `gorm:"column:code;not null;uniqueIndex"`
	Name    string `gorm:"column:name;not null"`
	LogoURL string `gorm:"column:logo_url"`
}

// TableName overrides the default table name
func (Airlines) TableName() string { return "airlines" }

// PrimaryKey returns the row id
func (a Airlines) PrimaryKey() int64 { return a.ID }

// Flights GORM model for database mapping
type Flights struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	AirlineID     int64     `gorm:"column:airline_id;not null"`
	AirportFromID int64     `gorm:"column:airport_from_id;not null"`
	AirportToID   int64     `gorm:"column:airport_to_id;not null"`
	DTime         time.Time `gorm:"column:dtime;not null"`
	ATime         time.Time `gorm:"column:atime;not null"`
	FlightNumber  int64     `gorm:"column:flight_number;not null"`
	RemoteID      string    `gorm:"column:remote_id;not null;uniqueIndex"`
}

// TableName overrides the default table name
func (Flights) TableName() string { return "flights" }

// PrimaryKey returns the row id
func (f Flights) PrimaryKey() int64 { return f.ID }

// Routes GORM model for database mapping
type Routes struct {
	ID                  int64  `gorm:"column:id;primaryKey"`
	BookingToken        string `gorm:"column:booking_token;not null"`
	Price               int64  `gorm:"column:price;not null"`
	SubscriptionFetchID int64  `gorm:"column:subscription_fetch_id;not null;index"`
}

// TableName overrides the default table name
func (Routes) TableName() string { return "routes" }

// PrimaryKey returns the row id
func (r Routes) PrimaryKey() int64 { return r.ID }

// RoutesFlights GORM model for database mapping
type RoutesFlights struct {
	ID       int64 `gorm:"column:id;primaryKey"`
	FlightID int64 `gorm:"column:flight_id;not null"`
	RouteID  int64 `gorm:"column:route_id;not null;index"`
	IsReturn bool  `gorm:"column:is_return;not null"`
}

// TableName overrides the default table name
func (RoutesFlights) TableName() string { return "routes_flights" }

// PrimaryKey returns the row id
func (r RoutesFlights) PrimaryKey() int64 { return r.ID }

// Subscriptions GORM model for database mapping
type Subscriptions struct {
	ID            int64 `gorm:"column:id;primaryKey"`
	AirportFromID int64 `gorm:"column:airport_from_id;not null"`
	AirportToID   int64 `gorm:"column:airport_to_id;not null"`
}

// TableName overrides the default table name
func (Subscriptions) TableName() string { return "subscriptions" }

// PrimaryKey returns the row id
func (s Subscriptions) PrimaryKey() int64 { return s.ID }

// Fetches GORM model for database mapping
type Fetches struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	FetchTime time.Time `gorm:"column:fetch_time;not null"`
}

// TableName overrides the default table name
func (Fetches) TableName() string { return "fetches" }

// PrimaryKey returns the row id
func (f Fetches) PrimaryKey() int64 { return f.ID }

// SubscriptionsFetches GORM model for database mapping
type SubscriptionsFetches struct {
	ID              int64 `gorm:"column:id;primaryKey"`
	SubscriptionID  int64 `gorm:"column:subscription_id;not null"`
	FetchID         int64 `gorm:"column:fetch_id;not null"`
	APIFetchesCount int64 `gorm:"column:api_fetches_count;not null;default:0"`
}

// TableName overrides the default table name
func (SubscriptionsFetches) TableName() string { return "subscriptions_fetches" }

// PrimaryKey returns the row id
func (s SubscriptionsFetches) PrimaryKey() int64 { return s.ID }

// Users GORM model for database mapping
type Users struct {
	ID      int64  `gorm:"column:id;primaryKey"`
	Email   string `gorm:"column:email;not null;uniqueIndex"`
	Credits int64  `gorm:"column:credits;not null"`
}

// TableName overrides the default table name
func (Users) TableName() string { return "users" }

// PrimaryKey returns the row id
func (u Users) PrimaryKey() int64 { return u.ID }

// UsersSubscriptions GORM model for database mapping
type UsersSubscriptions struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	UserID         int64      `gorm:"column:user_id;not null;index"`
	SubscriptionID int64      `gorm:"column:subscription_id;not null;index"`
	Active         bool       `gorm:"column:active;not null"`
	DateFrom       *time.Time `gorm:"column:date_from"`
	DateTo         *time.Time `gorm:"column:date_to"`
}

// TableName overrides the default table name
func (UsersSubscriptions) TableName() string { return "users_subscriptions" }

// PrimaryKey returns the row id
func (u UsersSubscriptions) PrimaryKey() int64 { return u.ID }

// AccountTransfers GORM model for database mapping
type AccountTransfers struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	UserID         int64     `gorm:"column:user_id;not null;index"`
	TransferAmount int64     `gorm:"column:transfer_amount;not null"`
	TransferredAt  time.Time `gorm:"column:transferred_at;not null"`
}

// TableName overrides the default table name
func (AccountTransfers) TableName() string { return "account_transfers" }

// PrimaryKey returns the row id
func (a AccountTransfers) PrimaryKey() int64 { return a.ID }

// SubscriptionsFetchesAccountTransfers GORM model for database mapping
type SubscriptionsFetchesAccountTransfers struct {
	ID                  int64 `gorm:"column:id;primaryKey"`
	AccountTransferID   int64 `gorm:"column:account_transfer_id;not null"`
	SubscriptionFetchID int64 `gorm:"column:subscription_fetch_id;not null"`
}

// TableName overrides the default table name
func (SubscriptionsFetchesAccountTransfers) TableName() string {
	return "subscriptions_fetches_account_transfers"
}

// PrimaryKey returns the row id
func (s SubscriptionsFetchesAccountTransfers) PrimaryKey() int64 { return s.ID }

// Models lists every model in dependency order.
func Models() []interface{} {
	return []interface{}{
		&Airports{},
		&Airlines{},
		&Flights{},
		&Routes{},
		&RoutesFlights{},
		&Subscriptions{},
		&Fetches{},
		&SubscriptionsFetches{},
		&Users{},
		&UsersSubscriptions{},
		&AccountTransfers{},
		&SubscriptionsFetchesAccountTransfers{},
	}
}
