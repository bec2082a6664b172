package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/taesko/freefall/internal/domain/entity"
	"github.com/taesko/freefall/internal/domain/repository"
	gormrepo "github.com/taesko/freefall/internal/interface/repository"
	"github.com/taesko/freefall/pkg/logger"
	"github.com/taesko/freefall/pkg/metrics"
)

type mockFlightAPI struct {
	mock.Mock
}

func (m *mockFlightAPI) SearchFlights(ctx context.Context, query entity.SearchQuery) (*entity.SearchPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SearchPage), args.Error(1)
}

func (m *mockFlightAPI) LookupAirports(ctx context.Context, term string) ([]entity.RemoteLocation, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RemoteLocation), args.Error(1)
}

func (m *mockFlightAPI) ListAirlines(ctx context.Context) ([]entity.RemoteAirline, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RemoteAirline), args.Error(1)
}

type recordingArchive struct {
	mu    sync.Mutex
	pages []entity.ArchivedPage
}

func (a *recordingArchive) Save(_ context.Context, page *entity.ArchivedPage) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pages = append(a.pages, *page)
	return nil
}

type testEnv struct {
	gw          *gormrepo.Gateway
	api         *mockFlightAPI
	archive     *recordingArchive
	metrics     *metrics.Metrics
	log         logger.Logger
	airportRepo repository.AirportRepository
	airlineRepo repository.AirlineRepository
	flightRepo  repository.FlightRepository
	routeRepo   repository.RouteRepository
	subRepo     repository.SubscriptionRepository
	fetchRepo   repository.FetchRepository
	billingRepo repository.BillingRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(gormrepo.Models()...))

	gw := gormrepo.NewGateway(db)
	return &testEnv{
		gw:          gw,
		api:         &mockFlightAPI{},
		archive:     &recordingArchive{},
		metrics:     metrics.NewMetrics("test", prometheus.NewRegistry()),
		log:         logger.NewNopLogger(),
		airportRepo: gormrepo.NewGormAirportRepository(gw),
		airlineRepo: gormrepo.NewGormAirlineRepository(gw),
		flightRepo:  gormrepo.NewGormFlightRepository(gw),
		routeRepo:   gormrepo.NewGormRouteRepository(gw),
		subRepo:     gormrepo.NewGormSubscriptionRepository(gw),
		fetchRepo:   gormrepo.NewGormFetchRepository(gw),
		billingRepo: gormrepo.NewGormBillingRepository(gw),
	}
}

func (e *testEnv) airportResolver() *AirportResolver {
	return NewAirportResolver(e.airportRepo, e.api, e.metrics, e.log)
}

func (e *testEnv) orchestrator(concurrency int) *SearchOrchestrator {
	airports := e.airportResolver()
	return NewSearchOrchestrator(
		e.api,
		e.fetchRepo,
		e.archive,
		airports,
		NewFlightUpserter(airports, e.airlineRepo, e.flightRepo, e.metrics),
		NewRouteUpserter(e.routeRepo, e.flightRepo, e.metrics),
		SearchOptions{RoutesLimit: 30, WindowMonths: 1, Concurrency: concurrency},
		e.metrics,
		e.log,
	)
}

func (e *testEnv) seedAirport(t *testing.T, code, name string) int64 {
	t.Helper()
	a := &entity.Airport{IATACode: code, Name: name}
	_, err := e.airportRepo.CreateIfAbsent(context.Background(), a)
	require.NoError(t, err)
	return a.ID
}

func (e *testEnv) seedAirline(t *testing.T, code string) int64 {
	t.Helper()
	a := &entity.Airline{Code: code, Name: code + " " + code}
	_, err := e.airlineRepo.CreateIfAbsent(context.Background(), a)
	require.NoError(t, err)
	return a.ID
}

func (e *testEnv) seedSubscriptionFetch(t *testing.T, subscriptionID int64) *entity.SubscriptionFetch {
	t.Helper()
	ctx := context.Background()
	fetch, err := e.fetchRepo.CreateFetch(ctx, time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	sf, err := e.fetchRepo.CreateSubscriptionFetch(ctx, subscriptionID, fetch.ID)
	require.NoError(t, err)
	return sf
}

func count[T gormrepo.Row](t *testing.T, gw *gormrepo.Gateway) int {
	t.Helper()
	rows, err := gormrepo.Select[T](context.Background(), gw, []string{"id"})
	require.NoError(t, err)
	return len(rows)
}

func flight(id, from, to, airline string, isReturn bool) entity.RemoteFlight {
	dep := time.Date(2026, 10, 20, 6, 30, 0, 0, time.UTC)
	return entity.RemoteFlight{
		ID:           id,
		FlightNumber: 100,
		DepartureUTC: dep,
		ArrivalUTC:   dep.Add(3 * time.Hour),
		FlyFrom:      from,
		FlyTo:        to,
		Airline:      airline,
		Return:       isReturn,
	}
}
