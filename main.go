package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mikeandholly/wedding-api/config"
	"github.com/mikeandholly/wedding-api/cron"
	"github.com/mikeandholly/wedding-api/handlers"
	"github.com/mikeandholly/wedding-api/middleware"
	"github.com/mikeandholly/wedding-api/routes"
	"github.com/mikeandholly/wedding-api/rules"
	"github.com/mikeandholly/wedding-api/services"
	"github.com/mikeandholly/wedding-api/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Info("No .env file found, using environment variables")
	}
	utils.InitLogger()

	client, db, err := config.InitDB()
	if err != nil {
		utils.Logger.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			utils.Logger.WithError(err).Warn("Error disconnecting from database")
		}
	}()
	utils.Logger.Info("Database connected")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := config.EnsureIndexes(ctx, db); err != nil {
		cancel()
		utils.Logger.Fatal("Failed to create indexes: ", err)
	}
	cancel()

	inviteeService := services.NewInviteeService(db)
	guestService := services.NewGuestService(db, inviteeService)
	eventService := services.NewEventService(db, guestService)
	backupService := services.NewBackupService(db)

	svcs := &routes.Services{
		Invitees:    inviteeService,
		Guests:      guestService,
		Events:      eventService,
		LoginTokens: services.NewLoginTokenService(db),
		Email: services.NewEmailService(
			os.Getenv("RESEND_API_KEY"),
			os.Getenv("FROM_EMAIL"),
			frontendURL(),
		),
		Backup: backupService,
		Rules:  rules.NewEngine(inviteeService),
	}

	scheduler := cron.Start(backupService)
	defer scheduler.Stop()

	wsHandler := handlers.NewWSHandler()

	router := gin.Default()

	corsConfig := cors.Config{
		AllowOrigins:     []string{frontendURL()},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Typeform-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		utils.Logger.WithFields(map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"clientIp": c.ClientIP(),
		}).Info("request")
	})

	router.Use(middleware.RateLimiter())

	public := router.Group("/")
	routes.SetupAuthRoutes(public, svcs)
	routes.SetupWebhookRoutes(public, svcs, wsHandler)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware())
	{
		routes.SetupInviteeRoutes(v1, svcs, wsHandler)
		routes.SetupGuestRoutes(v1, svcs, wsHandler)
		routes.SetupEventRoutes(v1, svcs, wsHandler)
		routes.SetupMediaRoutes(v1)
		routes.SetupAdminRoutes(v1, svcs)
		v1.GET("/ws/updates", wsHandler.HandleWS)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	utils.Logger.Infof("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.Logger.Fatal("Failed to start server: ", err)
	}
}

func frontendURL() string {
	if u := os.Getenv("FRONTEND_URL"); u != "" {
		return u
	}
	return "http://localhost:3000"
}
