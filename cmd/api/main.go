package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/flamecloud/flamecloud-api/internal/api/http"
	"github.com/flamecloud/flamecloud-api/internal/api/http/handlers"
	"github.com/flamecloud/flamecloud-api/internal/auth"
	"github.com/flamecloud/flamecloud-api/internal/config"
	"github.com/flamecloud/flamecloud-api/internal/events"
	"github.com/flamecloud/flamecloud-api/internal/observability"
	"github.com/flamecloud/flamecloud-api/internal/persistence"
	"github.com/flamecloud/flamecloud-api/internal/repository"
	"github.com/flamecloud/flamecloud-api/internal/service"
	"github.com/flamecloud/flamecloud-api/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	messageRepo := repository.NewChatMessageRepository(pool)
	paidPlanRepo := repository.NewPaidPlanRepository(pool)
	freePlanRepo := repository.NewFreePlanRepository(pool)
	locationRepo := repository.NewLocationRepository(pool)
	partnerRepo := repository.NewPartnerRepository(pool)
	settingRepo := repository.NewSiteSettingRepository(pool)
	aboutRepo := repository.NewAboutContentRepository(pool)

	unreadCache := persistence.NewUnreadCache(redis)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(cfg.Auth, userRepo)
	ticketService := service.NewTicketService(ticketRepo, dispatcher)
	chatService := service.NewChatService(messageRepo, userRepo, unreadCache, dispatcher)
	adminService := service.NewAdminService(service.AdminDependencies{
		UserRepo:    userRepo,
		TicketRepo:  ticketRepo,
		MessageRepo: messageRepo,
		UnreadCache: unreadCache,
		Dispatcher:  dispatcher,
	})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		PaidPlanRepo: paidPlanRepo,
		FreePlanRepo: freePlanRepo,
		LocationRepo: locationRepo,
		PartnerRepo:  partnerRepo,
		SettingRepo:  settingRepo,
		AboutRepo:    aboutRepo,
		UserRepo:     userRepo,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Chat:           handlers.NewChatHandler(chatService),
		Admin:          handlers.NewAdminHandler(adminService, metrics),
		Catalog:        handlers.NewCatalogHandler(catalogService),
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
