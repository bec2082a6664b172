package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taesko/freefall/internal/domain/repository"
	"github.com/taesko/freefall/internal/infrastructure/config"
	"github.com/taesko/freefall/internal/infrastructure/persistence"
	"github.com/taesko/freefall/internal/interface/kiwi"
	gormrepo "github.com/taesko/freefall/internal/interface/repository"
	"github.com/taesko/freefall/internal/usecase"
	"github.com/taesko/freefall/pkg/logger"
	"github.com/taesko/freefall/pkg/metrics"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Error("Failed to load config", "error", err)
		return 1
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting freefall fetcher", "version", cfg.AppVersion)

	// Cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics("freefall", reg)

	// Set up PostgreSQL connection
	log.Info("Connecting to PostgreSQL")
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI, persistence.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Error("Failed to connect to PostgreSQL", "error", err)
		return 1
	}
	defer func() {
		if err := persistence.ClosePostgresDB(gormDB); err != nil {
			log.Error("PostgreSQL close error", "error", err)
		}
	}()

	// Set up the optional MongoDB page archive
	var archive repository.PageArchive = gormrepo.NewNopPageArchive()
	if cfg.MongoURI != "" {
		log.Info("Connecting to MongoDB")
		var mongoClient *mongo.Client
		mongoClient, err = persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			log.Error("Failed to connect to MongoDB", "error", err)
			return 1
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				log.Error("MongoDB disconnect error", "error", err)
			}
		}()

		archive, err = gormrepo.NewMongoPageArchive(ctx, mongoClient.Database(cfg.MongoDB))
		if err != nil {
			log.Error("Failed to set up page archive", "error", err)
			return 1
		}
	}

	// Set up repositories
	gw := gormrepo.NewGateway(gormDB)
	airportRepo := gormrepo.NewGormAirportRepository(gw)
	airlineRepo := gormrepo.NewGormAirlineRepository(gw)
	flightRepo := gormrepo.NewGormFlightRepository(gw)
	routeRepo := gormrepo.NewGormRouteRepository(gw)
	subRepo := gormrepo.NewGormSubscriptionRepository(gw)
	fetchRepo := gormrepo.NewGormFetchRepository(gw)
	billingRepo := gormrepo.NewGormBillingRepository(gw)

	api := kiwi.NewClient(kiwi.Options{
		BaseURL:  cfg.KiwiBaseURL,
		Partner:  cfg.KiwiPartner,
		Currency: cfg.SearchCurrency,
		Locale:   cfg.SearchLocale,
		Timeout:  cfg.KiwiTimeout,
	}, log)

	// Set up use cases
	airports := usecase.NewAirportResolver(airportRepo, api, m, log)
	search := usecase.NewSearchOrchestrator(
		api,
		fetchRepo,
		archive,
		airports,
		usecase.NewFlightUpserter(airports, airlineRepo, flightRepo, m),
		usecase.NewRouteUpserter(routeRepo, flightRepo, m),
		usecase.SearchOptions{
			RoutesLimit:  cfg.RoutesLimit,
			WindowMonths: cfg.SearchWindowMonths,
			Concurrency:  cfg.FetchConcurrency,
		},
		m,
		log,
	)
	runner := usecase.NewFetchRunner(
		api,
		usecase.NewAirlineResolver(airlineRepo, cfg.AirlineLogoURL, cfg.FetchConcurrency, m, log),
		airportRepo,
		subRepo,
		fetchRepo,
		usecase.NewBillingLedger(billingRepo, cfg.FetchTax, m, log),
		search,
		m,
		log,
	)

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error", "error", err)
		}
	}()

	if cfg.RunInterval <= 0 {
		if err := runner.Run(ctx); err != nil {
			return 1
		}
		log.Info("Freefall fetcher finished")
		return 0
	}

	// Interval mode: a failed run is logged by the runner and retried on the next tick
	log.Info("Running on interval", "interval", cfg.RunInterval)
	_ = runner.Run(ctx)

	ticker := time.NewTicker(cfg.RunInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("Freefall fetcher stopped")
			return 0
		case <-ticker.C:
			_ = runner.Run(ctx)
		}
	}
}
