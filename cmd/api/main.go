package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/andresmx/sentimsg/internal/application"
	appai "github.com/andresmx/sentimsg/internal/application/ai"
	"github.com/andresmx/sentimsg/internal/application/analysis"
	"github.com/andresmx/sentimsg/internal/config"
	"github.com/andresmx/sentimsg/internal/domain/messages"
	aiClient "github.com/andresmx/sentimsg/internal/infra/ai/openai"
	mysqlp "github.com/andresmx/sentimsg/internal/infra/db/mysql"
	postgresp "github.com/andresmx/sentimsg/internal/infra/db/postgres"
	sqlitep "github.com/andresmx/sentimsg/internal/infra/db/sqlite"
	"github.com/andresmx/sentimsg/internal/infra/httpserver"
	minioStore "github.com/andresmx/sentimsg/internal/infra/storage"
	"github.com/andresmx/sentimsg/internal/logger"
	"github.com/andresmx/sentimsg/internal/middleware"
)

func main() {
	log := logger.New("sentimsg-api")

	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Error("config load error", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// connect storage per configured driver
	db, repo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Error("database connect error", "driver", cfg.Database.Driver, "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// optional document archive
	var archive messages.ArchiveStore
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Error("minio init error", "err", err)
			os.Exit(1)
		}
		archive = store
	}

	// init services
	svc := &analysis.Service{
		Repo:    repo,
		Archive: archive,
		Clock:   application.SystemClock{},
		Log:     log,
	}
	var aiSvc *appai.Service
	if cfg.OpenAI.Enabled {
		aiSvc = appai.NewService(aiClient.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model))
	} else {
		aiSvc = appai.NewService(nil)
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware(log))
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}))
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.NewRouter(svc, aiSvc, cfg.Upload.MaxBytes))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Info("server listening", "addr", addr, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down server")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Error("shutdown error", "err", err)
	}
}

// openRepository connects the configured database, ensures the schema, and
// returns the matching repository implementation.
func openRepository(ctx context.Context, cfg *config.Config) (*sql.DB, messages.Repository, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sqlitep.Connect(ctx, cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlitep.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return db, sqlitep.NewMessageRepository(db), nil
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, err
		}
		if err := mysqlp.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return db, mysqlp.NewMessageRepository(db), nil
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		if err := postgresp.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return db, postgresp.NewMessageRepository(db), nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %q", cfg.Database.Driver)
	}
}
