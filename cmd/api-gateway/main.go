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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/dropout-watch-api/api/swagger"
	"github.com/noah-isme/dropout-watch-api/internal/handler"
	"github.com/noah-isme/dropout-watch-api/internal/middleware"
	"github.com/noah-isme/dropout-watch-api/internal/repository"
	"github.com/noah-isme/dropout-watch-api/internal/service"
	"github.com/noah-isme/dropout-watch-api/pkg/cache"
	"github.com/noah-isme/dropout-watch-api/pkg/config"
	"github.com/noah-isme/dropout-watch-api/pkg/database"
	"github.com/noah-isme/dropout-watch-api/pkg/genai"
	"github.com/noah-isme/dropout-watch-api/pkg/jobs"
	"github.com/noah-isme/dropout-watch-api/pkg/logger"
	"github.com/noah-isme/dropout-watch-api/pkg/middleware/cors"
	"github.com/noah-isme/dropout-watch-api/pkg/middleware/requestid"
	"github.com/noah-isme/dropout-watch-api/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	db, err := database.NewMySQL(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect mysql: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Repositories.
	studentRepo := repository.NewStudentRepository(db)
	userRepo := repository.NewUserRepository(db)
	listenerRepo := repository.NewListenerRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	interventionRepo := repository.NewInterventionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	contactRepo := repository.NewContactRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	metrics := service.NewMetricsService()

	// Redis is optional; without it the cache service runs disabled and
	// every dashboard request hits MySQL.
	var cacheRepo *repository.CacheRepository
	var cacheStore service.CacheStore
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, dashboard caching disabled", zap.Error(err))
		} else {
			defer func() { _ = redisClient.Close() }()
			cacheRepo = repository.NewCacheRepository(redisClient)
			cacheStore = cacheRepo
		}
	}
	cacheService := service.NewCacheService(cacheStore, cfg.Dashboard.CacheTTL, metrics, log)

	// Text generation for the listener auto-reply. Without an API key the
	// relay always uses the canned fallback.
	var generator genai.TextGenerator = genai.Disabled{}
	if cfg.Relay.APIKey != "" {
		client, err := genai.NewClient(genai.Config{
			APIKey:      cfg.Relay.APIKey,
			BaseURL:     cfg.Relay.BaseURL,
			Model:       cfg.Relay.Model,
			MaxTokens:   cfg.Relay.MaxTokens,
			Temperature: float32(cfg.Relay.Temperature),
		})
		if err != nil {
			return fmt.Errorf("build genai client: %w", err)
		}
		generator = client
	} else {
		log.Warn("relay api key not set, auto-replies will use the fallback text")
	}

	// Services.
	authService := service.NewAuthService(userRepo, cfg.Auth.TokenExpiry, log)
	userService := service.NewUserService(userRepo, log)
	studentService := service.NewStudentService(studentRepo, cacheService, log)
	listenerService := service.NewListenerService(listenerRepo)
	conversationService := service.NewConversationService(conversationRepo, listenerRepo, log)
	interventionService := service.NewInterventionService(interventionRepo, cacheService, log)
	notificationService := service.NewNotificationService(notificationRepo)
	contactService := service.NewContactService(contactRepo, log)
	dashboardService := service.NewDashboardService(dashboardRepo, cacheService, log)
	chatService := service.NewChatService()

	var archive *storage.Archive
	if cfg.Report.ArchiveEnabled {
		archive, err = storage.NewArchive(cfg.Report.ArchiveDir)
		if err != nil {
			return fmt.Errorf("open report archive: %w", err)
		}
		if deleted, err := archive.CleanupOlderThan(cfg.Report.ArchiveTTL); err != nil {
			log.Warn("report archive cleanup failed", zap.Error(err))
		} else if len(deleted) > 0 {
			log.Info("pruned archived reports", zap.Int("count", len(deleted)))
		}
	}
	var signer *storage.TokenSigner
	if cfg.Report.LinkSecret != "" {
		signer = storage.NewTokenSigner(cfg.Report.LinkSecret, cfg.Report.LinkTTL)
	}
	reportService := service.NewReportService(studentRepo, archive, signer, log)
	relayService := service.NewRelayService(conversationRepo, generator, cfg.Relay.RequestTimeout, metrics, log)

	relayQueue := jobs.NewQueue("relay", relayService.HandleJob, jobs.QueueConfig{
		Workers:    cfg.Relay.Workers,
		MaxRetries: cfg.Relay.MaxRetries,
		Logger:     log,
	})
	messageService := service.NewMessageService(conversationRepo, relayQueue, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	relayQueue.Start(ctx)
	defer relayQueue.Stop()

	router := buildRouter(cfg, log, metrics, routerDeps{
		auth:          handler.NewAuthHandler(authService, log),
		users:         handler.NewUserHandler(userService, log),
		students:      handler.NewStudentHandler(studentService, log),
		listeners:     handler.NewListenerHandler(listenerService),
		conversations: handler.NewConversationHandler(conversationService, log),
		messages:      handler.NewMessageHandler(messageService, conversationService, log),
		interventions: handler.NewInterventionHandler(interventionService, log),
		notifications: handler.NewNotificationHandler(notificationService),
		contacts:      handler.NewContactHandler(contactService),
		dashboard:     handler.NewDashboardHandler(dashboardService),
		chat:          handler.NewChatHandler(chatService),
		reports:       handler.NewReportHandler(reportService, log),
		authService:   authService,
		db:            pinger{db.PingContext},
		cache:         cacheRepo,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

type pinger struct {
	ping func(ctx context.Context) error
}

func (p pinger) Ping(ctx context.Context) error { return p.ping(ctx) }

type routerDeps struct {
	auth          *handler.AuthHandler
	users         *handler.UserHandler
	students      *handler.StudentHandler
	listeners     *handler.ListenerHandler
	conversations *handler.ConversationHandler
	messages      *handler.MessageHandler
	interventions *handler.InterventionHandler
	notifications *handler.NotificationHandler
	contacts      *handler.ContactHandler
	dashboard     *handler.DashboardHandler
	chat          *handler.ChatHandler
	reports       *handler.ReportHandler

	authService *service.AuthService
	db          pinger
	cache       *repository.CacheRepository
}

func buildRouter(cfg *config.Config, log *zap.Logger, metrics *service.MetricsService, deps routerDeps) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestid.Middleware(),
		logger.GinMiddleware(log),
		cors.New(cfg.CORS.AllowedOrigins),
		middleware.Metrics(metrics),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ready", func(c *gin.Context) {
		if err := deps.db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		if deps.cache != nil {
			if err := deps.cache.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "cache": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group(cfg.APIPrefix)

	// Open surface, matching the frontend the legacy backend served.
	api.POST("/auth/login", deps.auth.Login)
	api.POST("/auth/register", deps.auth.Register)
	api.POST("/contact", deps.contacts.Submit)
	api.POST("/chat", deps.chat.Reply)
	api.GET("/reports/download", deps.reports.Download)

	api.GET("/students", deps.students.List)
	api.POST("/students", deps.students.Create)
	api.PUT("/students", deps.students.UpdateStatus)

	api.GET("/dashboard", deps.dashboard.Get)
	api.GET("/dashboard/factors", deps.dashboard.Factors)

	api.GET("/listeners", deps.listeners.List)

	api.GET("/conversations", deps.conversations.List)
	api.POST("/conversations", deps.conversations.Create)
	api.PUT("/conversations", deps.conversations.UpdateStatus)

	api.GET("/messages", deps.messages.List)
	api.POST("/messages", deps.messages.Post)

	api.GET("/interventions", deps.interventions.List)
	api.POST("/interventions", deps.interventions.Create)
	api.PUT("/interventions", deps.interventions.Update)

	api.GET("/notifications", deps.notifications.List)
	api.POST("/notifications", deps.notifications.Mutate)

	// Session-bound surface.
	authed := api.Group("", middleware.Auth(deps.authService))
	authed.GET("/auth/check", deps.auth.Check)
	authed.POST("/auth/logout", deps.auth.Logout)

	// Admin-only surface.
	admin := authed.Group("", middleware.RequireAdmin())
	admin.GET("/users", deps.users.List)
	admin.POST("/users", deps.users.Create)
	admin.PUT("/users", deps.users.Update)
	admin.DELETE("/users", deps.users.Delete)
	admin.GET("/reports/high-risk", deps.reports.HighRisk)
	admin.POST("/reports/high-risk/link", deps.reports.Link)

	return router
}
