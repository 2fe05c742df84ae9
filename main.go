package main

import (
	"context"
	"encoding/json"

	"launchsite-backend/internal/chat"
	"launchsite-backend/internal/config"
	"launchsite-backend/internal/database"
	"launchsite-backend/internal/events"
	"launchsite-backend/internal/handlers"
	"launchsite-backend/internal/middleware"
	"launchsite-backend/internal/notify"
	"launchsite-backend/internal/redis"
	"launchsite-backend/internal/services"
	"launchsite-backend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	// Load configuration
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	ctx := context.Background()

	// Initialize the event bus. Without redis the server still works as
	// a single node on the in-process bus.
	var bus events.Bus
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		logrus.WithError(err).Warn("Redis unavailable, falling back to in-process events")
		bus = events.NewMemoryBus()
	} else {
		redisBus := events.NewRedisBus(redisClient)
		go redisBus.Run(ctx)
		bus = redisBus
	}

	// Initialize WebSocket hub and bridge store events onto it
	hub := websocket.NewHub()
	go hub.Run()

	forward := func(event events.Event) {
		data, err := json.Marshal(event)
		if err != nil {
			logrus.WithError(err).Warn("Failed to marshal event for broadcast")
			return
		}
		hub.Broadcast(data)
	}
	bus.Subscribe(events.TableContactForms, forward)
	bus.Subscribe(events.TablePageVisits, forward)

	// Notification feed
	feed := notify.NewFeed(db, bus)

	// Object storage for CMS media
	storage, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage")
	}
	if err := storage.EnsureBucket(ctx); err != nil {
		logrus.WithError(err).Warn("Failed to ensure media bucket")
	}

	// Chat completion client
	chatClient := chat.NewClient(cfg.ChatAPIKey, cfg.ChatAPIURL, cfg.ChatModel)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, redisClient, cfg)
	leadHandler := handlers.NewLeadHandler(db, bus)
	dealHandler := handlers.NewDealHandler(db)
	visitHandler := handlers.NewVisitHandler(db, bus)
	analyticsHandler := handlers.NewAnalyticsHandler(db)
	notificationHandler := handlers.NewNotificationHandler(feed)
	exportHandler := handlers.NewExportHandler(db)
	chatHandler := handlers.NewChatHandler(chatClient)
	cmsHandler := handlers.NewCMSHandler(db, storage, cfg)

	router := setupRoutes(cfg, redisClient, hub,
		authHandler, leadHandler, dealHandler, visitHandler,
		analyticsHandler, notificationHandler, exportHandler,
		chatHandler, cmsHandler)

	logrus.WithField("port", cfg.Port).Info("Server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}

func setupRoutes(cfg *config.Config, redisClient *redis.Client, hub *websocket.Hub,
	authHandler *handlers.AuthHandler, leadHandler *handlers.LeadHandler,
	dealHandler *handlers.DealHandler, visitHandler *handlers.VisitHandler,
	analyticsHandler *handlers.AnalyticsHandler, notificationHandler *handlers.NotificationHandler,
	exportHandler *handlers.ExportHandler, chatHandler *handlers.ChatHandler,
	cmsHandler *handlers.CMSHandler) *gin.Engine {

	router := gin.Default()

	// CORS middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public site endpoints
		v1.POST("/contact", leadHandler.Submit)
		v1.POST("/visits", visitHandler.Track)
		v1.POST("/chat", chatHandler.Message)
		v1.GET("/cms", cmsHandler.GetBundle)
		v1.POST("/auth/login", authHandler.Login)

		// Admin endpoints
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(redisClient, cfg.JWTSecret))
		{
			admin.POST("/auth/logout", authHandler.Logout)

			admin.GET("/leads", leadHandler.List)
			admin.PUT("/leads/:id/status", leadHandler.UpdateStatus)
			admin.DELETE("/leads/:id", leadHandler.Delete)

			admin.GET("/deals", dealHandler.List)
			admin.POST("/deals", dealHandler.Create)
			admin.PUT("/deals/:id", dealHandler.Update)
			admin.PUT("/deals/:id/status", dealHandler.UpdateStatus)
			admin.DELETE("/deals/:id", dealHandler.Delete)

			admin.GET("/analytics", analyticsHandler.Overview)

			admin.GET("/notifications", notificationHandler.List)
			admin.PUT("/notifications/:id/read", notificationHandler.MarkRead)

			admin.GET("/export/leads", exportHandler.Leads)
			admin.GET("/export/deals", exportHandler.Deals)
			admin.GET("/export/visits", exportHandler.Visits)
			admin.GET("/export/backup", exportHandler.Backup)

			admin.PUT("/cms/content", cmsHandler.UpdateContent)
			admin.PUT("/cms/sections/:key", cmsHandler.UpdateSection)
			admin.PUT("/cms/navigation/:key", cmsHandler.UpdateNavigation)
			admin.PUT("/cms/settings", cmsHandler.UpdateSetting)
			admin.POST("/cms/media", cmsHandler.UploadMedia)

			admin.GET("/ws", func(c *gin.Context) {
				websocket.HandleWebSocket(hub, c)
			})
		}
	}

	return router
}
