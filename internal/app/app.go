package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ajaymaurya90/ecompointer-backend/internal/config"
	"github.com/ajaymaurya90/ecompointer-backend/internal/handler"
	"github.com/ajaymaurya90/ecompointer-backend/internal/repository"
	"github.com/ajaymaurya90/ecompointer-backend/internal/service"
	"github.com/ajaymaurya90/ecompointer-backend/internal/utils"
	"github.com/ajaymaurya90/ecompointer-backend/pkg/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const (
	serviceName     = "ecompointer-backend"
	shutdownTimeout = 5 * time.Second
)

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

func NewApp(infra Infrastructure, cfg *config.Config) (*App, error) {
	logger := infra.Logger()
	repos := repository.NewRepositories(infra.Postgres())

	tokenIssuer := utils.NewTokenIssuer(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
	)

	authService, err := service.NewAuthService(
		repos.User,
		repos.BrandOwner,
		tokenIssuer,
		cfg.Security.BCryptCost,
		cfg.Security.RevokeOnReuse,
		infra.MeterProvider(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	ownership := service.NewOwnershipResolver(repos.BrandOwner, repos.ShopLink)
	brandService := service.NewBrandService(repos.Brand, ownership)
	rateLimiter := service.NewRateLimiter(infra.Redis())

	authHandler := handler.NewAuthHandler(authService, handler.RefreshCookie{
		Domain: cfg.Cookie.Domain,
		Secure: cfg.Cookie.Secure,
	}, logger)
	brandHandler := handler.NewBrandHandler(brandService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(handler.LoggerMiddleware(logger))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	router.GET("/metrics", observability.PrometheusHandler(infra.MetricsHandler()))
	router.GET("/health", NewHealthChecker(infra).Handler)

	accessGuard := handler.AccessGuard(tokenIssuer)
	credentialLimit := handler.RateLimitMiddleware(
		rateLimiter,
		cfg.Security.RateLimitRequests,
		cfg.Security.RateLimitWindow.Duration,
		handler.RouteAndIPKey,
		logger,
	)

	handler.AuthRoutes(authHandler, accessGuard, credentialLimit).Register(router)
	handler.BrandRoutes(brandHandler, accessGuard).Register(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
			zap.String("env", a.config.Env),
		)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.infra.Logger().Error("HTTP server shutdown failed", zap.Error(err))
		return errors.Join(err, a.infra.Shutdown(ctx))
	}

	// Stores close only after in-flight requests have drained.
	if err := a.infra.Shutdown(ctx); err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
