package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/kaos_shop/internal/catalog"
	"github.com/Skotchmaster/kaos_shop/internal/catalog/repo"
	"github.com/Skotchmaster/kaos_shop/internal/checkout"
	"github.com/Skotchmaster/kaos_shop/internal/events"
	"github.com/Skotchmaster/kaos_shop/internal/httpserver"
	"github.com/Skotchmaster/kaos_shop/internal/search"
	"github.com/Skotchmaster/kaos_shop/internal/session"
	"github.com/Skotchmaster/kaos_shop/pkg/config"
	pkgdb "github.com/Skotchmaster/kaos_shop/pkg/db"
	"github.com/Skotchmaster/kaos_shop/pkg/logging"
	"github.com/Skotchmaster/kaos_shop/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/kaos_shop/pkg/middleware/logging"
	sessionmw "github.com/Skotchmaster/kaos_shop/pkg/middleware/session"
	"github.com/Skotchmaster/kaos_shop/pkg/mykafka"
)

func main() {
	cfg := config.Load(".env")
	if missing := cfg.Validate(); len(missing) > 0 {
		log.Fatalf("config: invalid or missing %v", missing)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	catalogRepo, closeDB, err := openCatalog(ctx, cfg)
	if err != nil {
		cancel()
		log.Fatalf("catalog: %v", err)
	}

	var searcher catalog.Searcher
	esClient, err := search.NewClient(search.Config{
		URL:      cfg.ESURL,
		User:     cfg.ESUser,
		Password: cfg.ESPassword,
		Index:    cfg.ESIndex,
	})
	switch {
	case errors.Is(err, search.ErrDisabled):
		log.Println("ES_URL not set, searching in memory")
	case err != nil:
		log.Printf("elasticsearch unavailable, searching in memory: %v", err)
	default:
		products, err := catalogRepo.List(ctx)
		if err == nil {
			err = esClient.IndexProducts(ctx, products)
		}
		if err != nil {
			log.Printf("elasticsearch indexing failed, searching in memory: %v", err)
		} else {
			searcher = esClient
		}
	}
	cancel()

	var publisher events.Publisher = events.LogPublisher{Logger: logger}
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		publisher = producer
	} else {
		log.Println("KAFKA_BROKERS not set, events are logged only")
	}

	sessions := session.NewRegistry(cfg.SessionTTL)
	janitor, err := session.StartJanitor(sessions, cfg.SessionSweepInterval, logger)
	if err != nil {
		log.Fatalf("session janitor: %v", err)
	}

	catalogSvc := catalog.NewService(catalogRepo, searcher)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echoprometheus.NewMiddleware("storefront"))
	e.Use(echomw.CORS())
	e.GET("/metrics", echoprometheus.NewHandler())

	csrfCfg := csrf.DefaultConfig()
	csrfCfg.Secure = cfg.CookieSecure

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{
			Svc:      catalogSvc,
			Sessions: sessions,
			Profile:  repo.StoreProfile(),
		},
		CartHandler: &httpserver.CartHTTP{
			Catalog:   catalogSvc,
			Sessions:  sessions,
			Publisher: publisher,
		},
		CheckoutHandler: &httpserver.CheckoutHTTP{
			Svc:      checkout.NewService(publisher),
			Sessions: sessions,
		},
		Session: sessionmw.NewMiddleware(cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure),
		CSRF:    csrf.Middleware(csrfCfg),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("storefront listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = janitor.Shutdown()
	if producer != nil {
		_ = producer.Close()
	}
	closeDB()

	log.Println("storefront stopped")
}

// openCatalog serves the seed products from memory, or from the database when
// DATABASE_URL is set.
func openCatalog(ctx context.Context, cfg config.Config) (repo.Repo, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, serving the catalog from memory")
		return repo.NewMemoryRepo(repo.SeedProducts()), func() {}, nil
	}

	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	r := &repo.GormRepo{DB: db}
	if err := r.Migrate(ctx); err != nil {
		_ = pkgdb.Close(db)
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	if err := r.Seed(ctx, repo.SeedProducts()); err != nil {
		_ = pkgdb.Close(db)
		return nil, nil, err
	}

	return r, func() { _ = pkgdb.Close(db) }, nil
}
