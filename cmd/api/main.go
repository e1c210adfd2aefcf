package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xavierca1/ligue-crm/internal/infra/auth"
	"github.com/xavierca1/ligue-crm/internal/infra/cache"
	"github.com/xavierca1/ligue-crm/internal/infra/config"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/infra/storage"
	"github.com/xavierca1/ligue-crm/internal/infra/worker"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ligue-crm: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Database
	db, err := database.NewDBConnection(cfg.Database.Postgres)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	// 2. Repositories
	userRepo := database.NewUserRepository(db)
	leadRepo := database.NewLeadRepository(db)
	clientRepo := database.NewClientRepository(db)
	contactRepo := database.NewContactRepository(db)
	activityRepo := database.NewActivityRepository(db)
	fileRepo := database.NewFileRepository(db)
	interactionRepo := database.NewInteractionRepository(db)
	taskRepo := database.NewTaskRepository(db)
	dashboardRepo := database.NewDashboardRepository(db)
	uow := database.NewUnitOfWork(db)

	// 3. Redis (dashboard cache + token denylist)
	var (
		dashboardCache usecase.DashboardCache
		revoker        usecase.TokenRevoker
		sessions       usecase.SessionRevoker
		denylist       middleware.RevocationChecker
		redisCheck     func(context.Context) error
	)
	if cfg.Redis.Enabled {
		rdb := cache.NewRedisClient(cfg.Redis)
		defer rdb.Close()
		if err := cache.Ping(ctx, rdb); err != nil {
			log.Warn("redis unavailable at startup", map[string]interface{}{"error": err})
		}
		tokens := cache.NewTokenDenylist(rdb)
		tokens.SessionTTL = cfg.Auth.TokenTTL
		dashboardCache = cache.NewDashboardCache(rdb)
		revoker = tokens
		sessions = tokens
		denylist = tokens
		redisCheck = func(ctx context.Context) error { return cache.Ping(ctx, rdb) }
	}

	// 4. RabbitMQ (follow-up events + email worker)
	var (
		producer    usecase.QueueProducerInterface
		queueStatus handlers.QueueStatus
	)
	if cfg.RabbitMQ.Enabled {
		mq, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			return fmt.Errorf("rabbitmq: %w", err)
		}
		defer mq.Close()
		producer = queue.NewProducer(mq.Ch)
		queueStatus = mq

		if cfg.Mail.Enabled {
			consumerCh, err := mq.ConsumerChannel(cfg.RabbitMQ.Prefetch)
			if err != nil {
				return fmt.Errorf("rabbitmq: %w", err)
			}
			sender := mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From, cfg.Mail.AppURL)
			consumer := queue.NewWorker(consumerCh, sender, log.WithFields(map[string]interface{}{"component": "follow_up_worker"}))
			go func() {
				if err := consumer.Start(ctx, queue.QueueName); err != nil {
					log.Error("follow-up worker stopped", map[string]interface{}{"error": err})
				}
			}()
		} else {
			log.Info("mail disabled, follow-up events are queued but not delivered", nil)
		}
	}

	if cfg.Workers.OverdueTasks.Enabled {
		overdue := worker.NewOverdueTaskWorker(db, cfg.Workers.OverdueTasks.Interval, log.WithFields(map[string]interface{}{"component": "overdue_worker"}))
		go overdue.Start(ctx)
	}

	disk, err := storage.NewLocalStorage(cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	// 5. UseCases
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	hasher := auth.NewBcryptHasher(0)

	authUC := usecase.NewAuthUseCase(userRepo, hasher, tokens, revoker)
	userUC := usecase.NewUserUseCase(userRepo, hasher, sessions)
	leadUC := usecase.NewLeadUseCase(uow, leadRepo, interactionRepo)
	scoringUC := usecase.NewLeadScoringUseCase(leadRepo, interactionRepo)
	interactionUC := usecase.NewInteractionUseCase(uow, leadRepo, interactionRepo, producer, log)
	clientUC := usecase.NewClientUseCase(clientRepo)
	contactUC := usecase.NewContactUseCase(contactRepo, clientRepo)
	activityUC := usecase.NewActivityUseCase(activityRepo)
	taskUC := usecase.NewTaskUseCase(taskRepo)
	fileUC := usecase.NewFileUseCase(fileRepo, disk, log)
	dashboardUC := usecase.NewDashboardUseCase(dashboardRepo, dashboardCache, cfg.Dashboard.CacheTTL, log)

	// 6. Handlers + router
	limiter := middleware.NewRateLimiter(cfg.RateLimit.Login.Limit, cfg.RateLimit.Login.Window)
	go limiter.Cleanup(ctx.Done())

	router := handlers.NewRouter(handlers.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: cfg.Server.WriteTimeout,
		CookieName:     cfg.Auth.CookieName,
		Verifier:       tokens,
		Denylist:       denylist,
		LoginLimiter:   limiter,
		Log:            log,
	}, handlers.Handlers{
		Auth:         handlers.NewAuthHandler(authUC, handlers.CookieConfig{Name: cfg.Auth.CookieName, Secure: cfg.Auth.CookieSecure}, log),
		Users:        handlers.NewUserHandler(userUC, log),
		Leads:        handlers.NewLeadHandler(leadUC, scoringUC, log),
		Interactions: handlers.NewInteractionHandler(interactionUC, log),
		Clients:      handlers.NewClientHandler(clientUC, contactUC, log),
		Activities:   handlers.NewActivityHandler(activityUC, taskUC, log),
		Files:        handlers.NewFileHandler(fileUC, cfg.Storage.MaxUploadBytes, log),
		Dashboard:    handlers.NewDashboardHandler(dashboardUC, log),
		Health:       handlers.NewHealthHandler(db, redisCheck, queueStatus, cfg.App.Version),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", map[string]interface{}{
			"addr":        srv.Addr,
			"environment": cfg.App.Environment,
			"version":     cfg.App.Version,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
