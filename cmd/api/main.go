package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/reading-service/internal/api/http"
	"github.com/spec-kit/reading-service/internal/api/http/handlers"
	"github.com/spec-kit/reading-service/internal/auth"
	"github.com/spec-kit/reading-service/internal/config"
	"github.com/spec-kit/reading-service/internal/events"
	"github.com/spec-kit/reading-service/internal/observability"
	"github.com/spec-kit/reading-service/internal/persistence"
	"github.com/spec-kit/reading-service/internal/repository"
	"github.com/spec-kit/reading-service/internal/service"
	"github.com/spec-kit/reading-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	tokenRepo := repository.NewDeviceTokenRepository(pool)
	bookRepo := repository.NewBookRepository(pool)
	shelfRepo := repository.NewShelfRepository(pool)
	clubRepo := repository.NewClubRepository(pool)
	pointRepo := repository.NewPointEventRepository(pool)

	tokenCache := auth.NewTokenCache(redis.Client, cfg.Auth.TokenCacheTTL())
	dispatcher := events.NewInMemoryDispatcher(logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo: accountRepo,
		TokenRepo:   tokenRepo,
		TokenCache:  tokenCache,
	}, logger)
	catalogService := service.NewCatalogService(bookRepo, cfg.Slug.MaxAttempts, logger)
	shelfService := service.NewShelfService(shelfRepo, bookRepo, dispatcher, logger)
	clubService := service.NewClubService(clubRepo, dispatcher, cfg.Slug.MaxAttempts, logger)
	pointsService := service.NewPointsService(pointRepo, dispatcher, logger)

	worker.StartPointsWorker(pointsService)

	if _, err := catalogService.BackfillSlugs(ctx); err != nil {
		logger.Warn("slug backfill incomplete", zap.Error(err))
	}

	authMiddleware := auth.NewMiddleware(authService.Validator())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, pointsService),
		Books:          handlers.NewBooksHandler(catalogService),
		Shelves:        handlers.NewShelvesHandler(shelfService),
		Clubs:          handlers.NewClubsHandler(clubService),
		Points:         handlers.NewPointsHandler(pointsService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
