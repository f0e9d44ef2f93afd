package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/homegrid/community-service/internal/api/http"
	"github.com/homegrid/community-service/internal/api/http/handlers"
	"github.com/homegrid/community-service/internal/auth"
	"github.com/homegrid/community-service/internal/config"
	"github.com/homegrid/community-service/internal/events"
	"github.com/homegrid/community-service/internal/observability"
	"github.com/homegrid/community-service/internal/persistence"
	"github.com/homegrid/community-service/internal/repository"
	"github.com/homegrid/community-service/internal/service"
	"github.com/homegrid/community-service/internal/worker"
	apperrors "github.com/homegrid/community-service/pkg/util/errorutil"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	tokenRepo := repository.NewOneTimeTokenRepository(pool)
	communityRepo := repository.NewCommunityRepository(pool)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	codec := auth.NewTokenCodec(cfg.Auth.JWTSecret)
	adminLister := auth.NewCachedAdminLister(communityRepo, redis.Client, cfg.Auth.AdminCacheTTL(), logger)

	tokens := service.NewOneTimeTokenService(tokenRepo, cfg.Auth)
	accounts := service.NewAccountService(service.AccountDependencies{
		UserRepo:   userRepo,
		Tokens:     tokens,
		Hasher:     hasher,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	communities := service.NewCommunityService(communityRepo, adminLister, dispatcher, logger)

	worker.Start(ctx, worker.Options{
		Subscribers:     []worker.Subscriber{service.NewNotificationService(dispatcher, logger, cfg.Notification)},
		Tokens:          tokens,
		CleanupInterval: cfg.Auth.TokenCleanupInterval(),
		Logger:          logger,
	})

	app := fiber.New(fiber.Config{
		AppName:       cfg.App.Name,
		CaseSensitive: true,
		ErrorHandler:  apperrors.FiberErrorHandler,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Users:       handlers.NewUsersHandler(accounts),
		Account:     handlers.NewAccountHandler(accounts),
		Communities: handlers.NewCommunitiesHandler(communities),

		Authentication: auth.NewAuthenticationFilter(auth.NewCredentialAuthenticator(userRepo, hasher), codec, cfg.Auth, logger, metrics),
		Authorization:  auth.NewAuthorizationFilter(codec, cfg.Auth, logger, metrics),
		OwnershipGuard: auth.NewResourceOwnershipGuard(adminLister, logger, metrics),
		LoginRateLimit: cfg.Auth.LoginRateLimitPerMinute,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
