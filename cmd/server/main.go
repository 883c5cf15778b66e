// cmd/server/main.go - Citizen Compass Backend Server
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BijayDhakal25/citizen-compass-app/internal/config"
	"github.com/BijayDhakal25/citizen-compass-app/internal/handlers"
	"github.com/BijayDhakal25/citizen-compass-app/internal/middleware"
	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
	"github.com/BijayDhakal25/citizen-compass-app/internal/services"
	"github.com/BijayDhakal25/citizen-compass-app/internal/storage"
	"github.com/BijayDhakal25/citizen-compass-app/internal/store"
	"github.com/BijayDhakal25/citizen-compass-app/internal/ws"
	"github.com/BijayDhakal25/citizen-compass-app/pkg/auth"
)

var (
	serverStartTime = time.Now()

	appVersion = "1.0.0"
)

func main() {
	cfg := config.Load()

	log := setupLogging(cfg)

	// Root context cancelled on shutdown; background workers hang off it.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots, closeStorage, err := setupStorage(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize storage")
	}
	defer closeStorage()

	st := store.New(snapshots, log)
	if err := st.Load(ctx); err != nil {
		log.WithError(err).Fatal("Failed to load snapshots")
	}

	if cfg.SeedDemoData {
		if err := st.SeedDemoData(ctx); err != nil {
			log.WithError(err).Warn("Failed to seed demo data")
		}
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiration)*time.Hour)

	// Realtime push hub and the outbound webhook notifier both hang off
	// the store's notification feed.
	hub := ws.NewHub(log)
	go hub.Run(ctx)
	st.Subscribe(hub.Push)

	if cfg.NotifyWebhookURL != "" {
		notifier := services.NewNotifier(cfg.NotifyWebhookURL, st.Settings, log)
		st.Subscribe(notifier.Notify)
	}

	// Pending applications past the threshold get approved by the sweep.
	sweeper := store.NewSweeper(st, cfg.SweepInterval, cfg.AutoApproveAfter, log)
	go sweeper.Run(ctx)

	router := setupRouter(ctx, cfg, st, jwtManager, hub, log)

	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	go func() {
		log.WithFields(logrus.Fields{
			"version": appVersion,
			"addr":    srv.Addr,
			"storage": cfg.StorageDriver,
		}).Info("Citizen Compass backend starting")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancel() // stop sweep, hub and rate limiter cleanup

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server exited")
}

func setupLogging(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

// setupStorage picks the snapshot backend from the configured driver.
// The file driver is the default; memory is for throwaway runs.
func setupStorage(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (storage.Snapshots, func(), error) {
	noop := func() {}

	switch cfg.StorageDriver {
	case "file":
		fs, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, noop, err
		}
		log.WithField("dir", cfg.DataDir).Info("Using file snapshot storage")
		return fs, noop, nil

	case "redis":
		rs, err := storage.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)
		if err != nil {
			return nil, noop, err
		}
		log.WithField("addr", cfg.RedisAddr).Info("Using Redis snapshot storage")
		return rs, func() { rs.Close() }, nil

	case "mongo":
		ms, err := storage.NewMongoStore(ctx, cfg.MongoURI, cfg.DatabaseName, time.Duration(cfg.MongoTimeout)*time.Second)
		if err != nil {
			return nil, noop, err
		}
		log.WithField("database", cfg.DatabaseName).Info("Using MongoDB snapshot storage")
		return ms, func() { ms.Close() }, nil

	case "memory":
		log.Warn("Using in-memory snapshot storage, state is lost on restart")
		return storage.NewMemory(), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func setupRouter(
	ctx context.Context,
	cfg *config.Config,
	st *store.Store,
	jwtManager *auth.JWTManager,
	hub *ws.Hub,
	log logrus.FieldLogger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(ctx, cfg.RateLimitRequests, cfg.RateLimitWindow)
		router.Use(limiter.RateLimit())
	}

	authHandler := handlers.NewAuthHandler(st, jwtManager)
	applicationHandler := handlers.NewApplicationHandler(st)
	complaintHandler := handlers.NewComplaintHandler(st)
	notificationHandler := handlers.NewNotificationHandler(st)
	announcementHandler := handlers.NewAnnouncementHandler(st)
	statsHandler := handlers.NewStatsHandler(st)
	wsHandler := handlers.NewWebSocketHandler(hub, jwtManager, log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"version":     appVersion,
			"uptime":      time.Since(serverStartTime).String(),
			"connections": hub.ConnectionCount(),
		})
	})

	api := router.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/announcements", announcementHandler.ListPublished)
	api.GET("/announcements/:id", announcementHandler.Get)
	api.GET("/certificate-types", applicationHandler.Schemas)
	api.GET("/complaint-categories", complaintHandler.Categories)

	// Realtime notifications, token authenticated via query parameter
	api.GET("/ws", wsHandler.Connect)

	// Authenticated citizen routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtManager))
	{
		protected.GET("/auth/me", authHandler.Me)

		protected.POST("/applications", applicationHandler.Submit)
		protected.GET("/applications", applicationHandler.ListMine)
		protected.GET("/applications/:id", applicationHandler.Get)

		protected.POST("/complaints", complaintHandler.Submit)
		protected.GET("/complaints", complaintHandler.ListMine)
		protected.GET("/complaints/:id", complaintHandler.Get)

		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
		protected.GET("/notifications/settings", notificationHandler.GetSettings)
		protected.PUT("/notifications/settings", notificationHandler.UpdateSettings)
	}

	// Review and administration routes, staff role or higher
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtManager))
	admin.Use(middleware.RequireRole(models.RoleStaff))
	{
		admin.GET("/applications", applicationHandler.ListAll)
		admin.PUT("/applications/:id/status", applicationHandler.UpdateStatus)
		admin.POST("/applications/:id/comments", applicationHandler.AddComment)

		admin.GET("/complaints", complaintHandler.ListAll)
		admin.PUT("/complaints/:id/status", complaintHandler.UpdateStatus)

		admin.GET("/announcements", announcementHandler.ListAll)
		admin.POST("/announcements", announcementHandler.Create)
		admin.PUT("/announcements/:id", announcementHandler.Update)
		admin.DELETE("/announcements/:id", announcementHandler.Delete)

		admin.GET("/stats", statsHandler.Dashboard)
	}

	return router
}
