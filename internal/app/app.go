package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/library-duty-api/internal/handler"
	"github.com/noah-isme/library-duty-api/internal/repository"
	"github.com/noah-isme/library-duty-api/internal/service"
	"github.com/noah-isme/library-duty-api/pkg/cache"
	"github.com/noah-isme/library-duty-api/pkg/config"
	"github.com/noah-isme/library-duty-api/pkg/database"
)

const (
	cachePrefix     = "duty:"
	shutdownTimeout = 10 * time.Second
)

// App owns the process-wide resources shared by the HTTP server and the CLI.
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *sqlx.DB
	redis   *redis.Client
	metrics *service.MetricsService

	Duty *service.DutyScheduleService
}

// New connects to PostgreSQL and, when the schedule cache is enabled, Redis.
// A Redis outage downgrades to uncached reads instead of failing startup.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	var redisClient *redis.Client
	if cfg.Scheduler.CacheEnabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("schedule cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	cacheSvc := service.NewCacheService(
		repository.NewCacheRepository(redisClient, cachePrefix),
		metrics,
		cfg.Scheduler.CacheTTL,
		logger,
		redisClient != nil,
	)

	duty := service.NewDutyScheduleService(
		repository.NewRosterRepository(db),
		repository.NewAssignmentRepository(db),
		db,
		cacheSvc,
		metrics,
		validator.New(),
		logger,
		service.DutyScheduleConfig{MaxSlotsPerStudent: cfg.Scheduler.MaxSlotsPerStudent},
	)

	return &App{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		redis:   redisClient,
		metrics: metrics,
		Duty:    duty,
	}, nil
}

// Handler builds the HTTP router.
func (a *App) Handler() http.Handler {
	return NewRouter(RouterDeps{
		Config:  a.cfg,
		Logger:  a.logger,
		Metrics: a.metrics,
		Duty:    handler.NewDutyScheduleHandler(a.Duty),
		Ops:     handler.NewMetricsHandler(a.metrics, a.db, a.logger),
	})
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Port),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", a.cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.logger.Info("server shutting down")
	return srv.Shutdown(shutdownCtx)
}

// Close releases database and cache connections.
func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
