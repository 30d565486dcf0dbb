package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/weebHarsh/ticketing-portal-sub000/internal/api/http"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/api/http/handlers"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/auth"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/cache"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/config"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/events"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/mail"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/observability"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/persistence"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/repository"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/service"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/worker"
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
	ticketRepo := repository.NewTicketRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	redirectRepo := repository.NewRedirectRepository(pool)
	statusChangeRepo := repository.NewStatusChangeRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	groupRepo := repository.NewGroupRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	mappingRepo := repository.NewMappingRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	teamMemberRepo := repository.NewTeamMemberRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	appCache := cache.New(redis.Client)
	dispatcher := events.NewInMemoryDispatcher()
	mailer := mail.NewSMTPMailer(cfg.SMTP)
	metrics := observability.NewMetrics()

	classificationService := service.NewClassificationService(mappingRepo, appCache)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:       ticketRepo,
		CommentRepo:      commentRepo,
		AttachmentRepo:   attachmentRepo,
		GroupRepo:        groupRepo,
		UserRepo:         userRepo,
		StatusChangeRepo: statusChangeRepo,
		RedirectRepo:     redirectRepo,
		Classification:   classificationService,
		Dispatcher:       dispatcher,
	})
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		TicketRepo:   ticketRepo,
		UserRepo:     userRepo,
		GroupRepo:    groupRepo,
		RedirectRepo: redirectRepo,
		Dispatcher:   dispatcher,
	})
	userService := service.NewUserService(cfg.Auth, service.UserDependencies{
		UserRepo:   userRepo,
		TicketRepo: ticketRepo,
	})
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		NotificationRepo: notificationRepo,
		UserRepo:         userRepo,
		Dispatcher:       dispatcher,
		Mailer:           mailer,
		Cache:            appCache,
		Logger:           logger,
	})
	masterDataService := service.NewMasterDataService(service.MasterDataDependencies{
		GroupRepo:      groupRepo,
		CategoryRepo:   categoryRepo,
		MappingRepo:    mappingRepo,
		ProjectRepo:    projectRepo,
		TeamMemberRepo: teamMemberRepo,
		Cache:          appCache,
	})
	reportService := service.NewReportService(reportRepo, ticketRepo)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(userService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:        handlers.NewTicketsHandler(ticketService, assignmentService),
		Users:          handlers.NewUsersHandler(userService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		MasterData:     handlers.NewMasterDataHandler(masterDataService),
		Reports:        handlers.NewReportsHandler(reportService),
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
