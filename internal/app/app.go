package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookcatalog/internal/adapters"
	"bookcatalog/internal/adapters/badgerdb"
	"bookcatalog/internal/adapters/cache"
	"bookcatalog/internal/adapters/httpclient"
	"bookcatalog/internal/adapters/postgres"
	"bookcatalog/internal/api"
	"bookcatalog/internal/book"
	bookhandler "bookcatalog/internal/book/handler"
	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/db"
	httpserver "bookcatalog/internal/platform/http"
	"bookcatalog/internal/rate"
	ratehandler "bookcatalog/internal/rate/handler"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const limiterCleanupEvery = time.Minute

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Money goes over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	fallback, err := decimal.NewFromString(appCfg.Rate.Fallback)
	if err != nil || !fallback.IsPositive() {
		return fmt.Errorf("invalid fallback rate %q", appCfg.Rate.Fallback)
	}

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations, initial rate)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	store, err := openStorage(startupCtx, appCfg)
	if err != nil {
		logrus.WithError(err).Error("Error opening storage")
		return err
	}
	defer store.close()

	rateRepo, err := cache.NewCachedRateRepository(store.rates, appCfg.Cache.MaxItems)
	if err != nil {
		return err
	}
	defer rateRepo.Close()

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	nbuClient := httpclient.NewNBUClient(&http.Client{Timeout: httpTimeout}, appCfg.NBU.URL)

	// Services
	coordinator := rate.NewCoordinator(rateRepo, store.books)
	rateService := rate.NewService(coordinator, rateRepo, nbuClient, fallback)
	bookService := book.NewService(store.books, coordinator)

	if err = rateService.Initialize(startupCtx); err != nil {
		logrus.WithError(err).Error("Failed to initialize rate")
		return err
	}
	logrus.Info("✅ Rate initialization successful")

	scheduler, err := rate.NewScheduler(rateService, appCfg.Scheduler)
	if err != nil {
		return err
	}
	// Ensure scheduler stops before storage closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	// Start scheduler tied to root context
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	limiter := httpserver.NewRateLimiter(appCfg.RateLimit)
	if limiter.Enabled() {
		go limiter.RunCleanup(ctx, limiterCleanupEvery)
	}

	// Handlers and router
	router := api.NewRouter(
		bookhandler.NewBookHandler(bookService, book.NewValidator()),
		ratehandler.NewRateHandler(rateService),
		limiter,
		appCfg.HTTPServer.TrustProxy,
	)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

type storage struct {
	books adapters.BookRepository
	rates adapters.RateRepository
	close func()
}

// openStorage connects the configured driver and returns its repositories.
func openStorage(ctx context.Context, cfg *config.AppConfig) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverBadger:
		bdb, err := badgerdb.Open(cfg.Storage.BadgerPath)
		if err != nil {
			return nil, err
		}
		books, err := badgerdb.NewBookRepository(bdb)
		if err != nil {
			_ = bdb.Close()
			return nil, err
		}
		logrus.WithField("path", cfg.Storage.BadgerPath).Info("✅ Badger storage opened")
		return &storage{
			books: books,
			rates: badgerdb.NewRateRepository(bdb),
			close: func() {
				if err := books.Close(); err != nil {
					logrus.WithError(err).Warn("Failed to release book id sequence")
				}
				if err := bdb.Close(); err != nil {
					logrus.WithError(err).Error("Failed to close badger")
				}
			},
		}, nil

	default:
		if cfg.DbServer.AutoMigrate {
			if err := db.Migrate(ctx, cfg.DbServer); err != nil {
				return nil, err
			}
			logrus.Info("✅ Postgres migrations applied")
		}
		pool, err := db.CreatePoolAndPing(ctx, cfg.DbServer)
		if err != nil {
			return nil, err
		}
		logrus.Info("✅ Postgres connection successful")
		return &storage{
			books: postgres.NewBookRepository(pool),
			rates: postgres.NewRateRepository(pool),
			close: pool.Close,
		}, nil
	}
}
