package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/Payphone-Digital/storefront/config"
	"github.com/Payphone-Digital/storefront/internal/catalog"
	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/handler"
	"github.com/Payphone-Digital/storefront/internal/middleware"
	"github.com/Payphone-Digital/storefront/internal/router"
	"github.com/Payphone-Digital/storefront/internal/service"
	"github.com/Payphone-Digital/storefront/internal/session"
	"github.com/Payphone-Digital/storefront/pkg/circuit"
	"github.com/Payphone-Digital/storefront/pkg/database"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/Payphone-Digital/storefront/pkg/redis"
	"github.com/Payphone-Digital/storefront/pkg/storage"
	"github.com/Payphone-Digital/storefront/pkg/urlstate"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize Zap logger
	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
		zap.String("storage_backend", config.Storefront.StorageBackend),
	)

	provider, closeStorage, err := openStorage(config)
	if err != nil {
		logger.GetLogger().Fatal("Failed to initialize storage backend",
			zap.String("backend", config.Storefront.StorageBackend),
			zap.Error(err),
		)
	}
	defer closeStorage()

	products, err := catalog.Load(config.Storefront.CatalogPath)
	if err != nil {
		logger.GetLogger().Fatal("Failed to load catalog",
			zap.String("path", config.Storefront.CatalogPath),
			zap.Error(err),
		)
	}
	logger.GetLogger().Info("Catalog loaded", zap.Int("product_count", products.Len()))

	// Sessions
	registry := session.NewRegistry(provider, config.Storefront.SessionIdleTTL, logger.Named("session"))
	registry.Start(sweepInterval(config.Storefront.SessionIdleTTL))
	defer registry.Stop()

	// Services
	jwtService := service.NewJWTService(config.JWT.Secret, config.JWT.Issuer, config.JWT.ExpirationTime)
	sessionService := service.NewSessionService(registry, jwtService)

	// Handlers
	urlCfg := handler.URLStateConfig{
		ItemsPerPage: config.Storefront.ItemsPerPage,
		Siblings:     config.Storefront.PaginationSiblings,
		HistoryMode:  urlstate.ParseHistoryMode(config.Storefront.HistoryMode),
		DefaultTab:   config.Storefront.DefaultTab,
	}
	sessionHandler := handler.NewSessionHandler(sessionService)
	cartHandler := handler.NewCartHandler(0)
	modalHandler := handler.NewModalHandler()
	catalogHandler := handler.NewCatalogHandler(products, urlCfg)
	navigationHandler := handler.NewNavigationHandler(urlCfg)
	healthHandler := handler.NewHealthHandler(provider, registry, constants.AppVersion)

	// Initialize middleware
	validationMiddleware := middleware.NewValidationMiddleware()
	sessionMiddleware := middleware.NewSessionMiddleware(sessionService)

	r := router.NewRouter(
		sessionHandler,
		cartHandler,
		modalHandler,
		catalogHandler,
		navigationHandler,
		healthHandler,

		validationMiddleware,
		sessionMiddleware,
		config,
	).SetupRoutes()

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.GetLogger().Error("Server forced to shutdown", zap.Error(err))
	}
	logger.GetLogger().Info("Server exited")
}

// openStorage connects the configured backend. The returned func releases
// its connections.
func openStorage(config *configs.Config) (storage.Provider, func(), error) {
	switch config.Storefront.StorageBackend {
	case storage.BackendRedis:
		client, err := redis.NewClient(redis.Config{
			Host:         config.Redis.Host,
			Port:         config.Redis.Port,
			Password:     config.Redis.Password,
			DB:           config.Redis.Database,
			PoolSize:     config.Redis.PoolSize,
			MinIdleConns: config.Redis.MinIdleConns,
			DialTimeout:  config.Redis.DialTimeout,
			ReadTimeout:  config.Redis.ReadTimeout,
			WriteTimeout: config.Redis.WriteTimeout,
		}, logger.Named("redis"))
		if err != nil {
			return nil, nil, err
		}
		provider := storage.NewRedisProvider(client, config.Redis.KeyPrefix, config.Redis.KeyTTL)
		return guard(config, provider), func() { _ = client.Close() }, nil

	case storage.BackendPostgres:
		db, err := database.NewPostgresDB(database.Config{
			Host:            config.Database.Host,
			Port:            config.Database.Port,
			User:            config.Database.User,
			Password:        config.Database.Password,
			Database:        config.Database.Name,
			SSLMode:         config.Database.SSLMode,
			Environment:     config.App.Environment,
			MaxIdleConns:    config.Database.MaxIdleConns,
			MaxOpenConns:    config.Database.MaxOpenConns,
			ConnMaxLifetime: config.Database.ConnMaxLifetime,
			ConnMaxIdleTime: config.Database.ConnMaxIdleTime,
		}, logger.Named("database"))
		if err != nil {
			return nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			_ = database.CloseDB(db)
			return nil, nil, err
		}
		logger.GetLogger().Info("Database migrated successfully")
		return guard(config, storage.NewPostgresProvider(db)), func() { _ = database.CloseDB(db) }, nil

	default:
		return storage.NewMemoryProvider(), func() {}, nil
	}
}

// guard wraps a remote backend in a circuit breaker. A non-positive
// threshold leaves it unguarded.
func guard(config *configs.Config, provider storage.Provider) storage.Provider {
	if config.Storefront.BreakerThreshold <= 0 {
		return provider
	}
	breaker := circuit.NewBreaker(provider.Name(), circuit.Config{
		Threshold: config.Storefront.BreakerThreshold,
		Cooldown:  config.Storefront.BreakerCooldown,
	}, logger.Named("circuit"))
	return storage.NewGuardedProvider(provider, breaker)
}

func sweepInterval(idleTTL time.Duration) time.Duration {
	interval := idleTTL / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	return interval
}
