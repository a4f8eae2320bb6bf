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

	"github.com/redis/go-redis/v9"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
	apphttp "jobboard/internal/http"
	"jobboard/internal/http/handlers"
	"jobboard/internal/http/metrics"
	httpmw "jobboard/internal/http/middleware"
	"jobboard/internal/observability"
	"jobboard/internal/repository/postgres"
	"jobboard/internal/repository/sqlite"
	"jobboard/internal/security"
)

// stores bundles the repositories of whichever backend DB_DRIVER selects.
type stores struct {
	users        user.Repository
	jobs         job.Repository
	applications application.Repository
	analytics    analytics.Repository
	ping         func(ctx context.Context) error
	close        func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := observability.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := st.close(); err != nil {
			logger.Warn("close store", slog.String("error", err.Error()))
		}
	}()

	limiter := newLimiter(cfg, logger)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	authService := app.NewAuthService(st.users, security.NewPasswordHasher(security.DefaultBcryptCost), jwtProvider, cfg.TokenTTL, logger)
	jobService := app.NewJobService(st.jobs, logger)
	applicationService := app.NewApplicationService(st.applications, st.jobs, logger)
	analyticsService := app.NewAnalyticsService(st.analytics)
	studentService := app.NewStudentService(st.users)

	collector := metrics.NewCollector()
	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService),
		JobHandler:         handlers.NewJobHandler(jobService),
		ApplicationHandler: handlers.NewApplicationHandler(applicationService, limiter, cfg.ApplyRateLimitPerMin),
		AnalyticsHandler:   handlers.NewAnalyticsHandler(analyticsService),
		StudentHandler:     handlers.NewStudentHandler(studentService),
		AuthMiddleware:     httpmw.NewAuthMiddleware(authService),
		Limiter:            limiter,
		Metrics:            collector,
		Logger:             logger,
		RequestTimeout:     cfg.RequestTimeout,
		Ready:              st.ping,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("api.started", slog.String("addr", server.Addr), slog.String("db_driver", cfg.DBDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			logger.Error("api.serve", slog.String("error", err.Error()))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api.shutdown", slog.String("error", err.Error()))
	}
	logger.Info("api.stopped")
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	switch cfg.DBDriver {
	case "postgres", "pgx":
		db, err := database.NewPostgres(ctx, database.PostgresConfig{
			Driver:          cfg.DBDriver,
			DSN:             cfg.DatabaseURL,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxIdle:     cfg.DBConnMaxIdle,
			ConnMaxLifetime: cfg.DBConnMaxLife,
		}, logger)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:        postgres.NewUserRepository(db),
			jobs:         postgres.NewJobRepository(db),
			applications: postgres.NewApplicationRepository(db),
			analytics:    postgres.NewAnalyticsRepository(db),
			ping:         db.PingContext,
			close:        db.Close,
		}, nil
	case "sqlite":
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:        sqlite.NewUserRepository(store),
			jobs:         sqlite.NewJobRepository(store),
			applications: sqlite.NewApplicationRepository(store),
			analytics:    sqlite.NewAnalyticsRepository(store),
			ping:         store.Ping,
			close:        store.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}

// newLimiter prefers Redis so limits hold across instances, and falls back
// to the in-process limiter when REDIS_URL is unset or invalid.
func newLimiter(cfg *config.Config, logger *slog.Logger) httpmw.Limiter {
	if cfg.RedisURL == "" {
		return httpmw.NewRateLimiter()
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("ratelimit.redis_url_invalid", slog.String("error", err.Error()))
		return httpmw.NewRateLimiter()
	}
	logger.Info("ratelimit.redis_enabled", slog.String("addr", opts.Addr))
	return httpmw.NewRedisLimiter(redis.NewClient(opts), logger)
}
