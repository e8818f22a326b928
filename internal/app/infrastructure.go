package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/ajaymaurya90/ecompointer-backend/internal/config"
	"github.com/ajaymaurya90/ecompointer-backend/pkg/database"
	"github.com/ajaymaurya90/ecompointer-backend/pkg/observability"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// Infrastructure owns the process-wide connections and telemetry.
type Infrastructure interface {
	Postgres() *database.Postgres
	Redis() *database.Redis
	Logger() *zap.Logger
	MetricsHandler() http.Handler
	MeterProvider() *metric.MeterProvider

	Shutdown(ctx context.Context) error
}

type infrastructure struct {
	postgres       *database.Postgres
	redis          *database.Redis
	logger         *zap.Logger
	metricsHandler http.Handler
	meterProvider  *metric.MeterProvider

	// closers run in reverse order of acquisition
	closers []func(ctx context.Context) error
}

var _ Infrastructure = &infrastructure{}

// NewInfrastructure migrates the schema, connects the stores and starts the
// metric pipeline. Anything acquired before a failure is released again.
func NewInfrastructure(ctx context.Context, cfg config.Config) (*infrastructure, error) {
	logger, err := observability.InitLogger(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	i := &infrastructure{logger: logger}
	if err := i.init(ctx, cfg); err != nil {
		_ = i.Shutdown(ctx)
		return nil, err
	}

	logger.Info("Infrastructure ready",
		zap.String("postgres", cfg.Postgres.Host+":"+cfg.Postgres.Port),
		zap.String("redis", cfg.Redis.Address()),
		zap.Bool("migrated", cfg.Postgres.Migrate),
	)
	return i, nil
}

func (i *infrastructure) init(ctx context.Context, cfg config.Config) error {
	if cfg.Postgres.Migrate {
		if err := database.RunMigrations(cfg.Postgres.URL(), i.logger); err != nil {
			return fmt.Errorf("failed to migrate PostgreSQL: %w", err)
		}
	}

	postgres, err := database.NewPostgres(cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	i.postgres = postgres
	i.closers = append(i.closers, func(context.Context) error { return postgres.Close() })

	redis, err := database.NewRedis(ctx, cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	i.redis = redis
	i.closers = append(i.closers, func(context.Context) error { return redis.Close() })

	meterProvider, metricsHandler, err := observability.InitTelemetry(serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	i.meterProvider = meterProvider
	i.metricsHandler = metricsHandler

	return nil
}

func (i *infrastructure) Postgres() *database.Postgres {
	return i.postgres
}

func (i *infrastructure) Redis() *database.Redis {
	return i.redis
}

func (i *infrastructure) Logger() *zap.Logger {
	return i.logger
}

func (i *infrastructure) MetricsHandler() http.Handler {
	return i.metricsHandler
}

func (i *infrastructure) MeterProvider() *metric.MeterProvider {
	return i.meterProvider
}

// Shutdown closes the stores, then flushes metrics and the logger.
func (i *infrastructure) Shutdown(ctx context.Context) error {
	var errs []error
	for _, closeFn := range slices.Backward(i.closers) {
		if err := closeFn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	i.closers = nil

	errs = append(errs, observability.Shutdown(ctx, i.meterProvider, i.logger))
	return errors.Join(errs...)
}
