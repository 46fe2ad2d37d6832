package main

import (
	"log"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sitehub-ops/checklist-api/internal/config"
	"github.com/sitehub-ops/checklist-api/internal/constants"
	"github.com/sitehub-ops/checklist-api/internal/database"
	"github.com/sitehub-ops/checklist-api/internal/handlers"
	"github.com/sitehub-ops/checklist-api/internal/middleware"
	"github.com/sitehub-ops/checklist-api/internal/repository"
	"github.com/sitehub-ops/checklist-api/internal/roster"
	"github.com/sitehub-ops/checklist-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Load the site roster
	siteRoster := roster.Default()
	if cfg.RosterPath != "" {
		var err error
		siteRoster, err = roster.Load(cfg.RosterPath)
		if err != nil {
			log.Fatalf("Failed to load roster: %v", err)
		}
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services
	dayRepo := repository.NewDayRepository(database.GetDB())
	authService := services.NewAuthService(siteRoster)
	dayService := services.NewDayService(dayRepo, services.DefaultTemplate(), cfg.SiteName, nil)

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware: Redis when configured, cookies otherwise
	store, err := buildSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400, // one shift day
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	dayHandler := handlers.NewDayHandler(dayService)
	reportHandler := handlers.NewReportHandler(dayService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Checklist API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(authService), authHandler.GetCurrentIdentity)
		}

		// Day routes (protected)
		days := api.Group("/days/:date")
		days.Use(middleware.RequireAuth(authService), middleware.ValidateDate())
		{
			days.GET("", dayHandler.GetDay)
			days.GET("/log", dayHandler.GetLog)
			days.POST("/tasks", dayHandler.AddAdHocTask)
			days.POST("/tasks/:task_id/toggle", dayHandler.ToggleTask)
			days.POST("/approve", dayHandler.Approve)
			days.GET("/report", middleware.RequireLead(), reportHandler.ExportDay)
		}
	}

	// Pre-seed today's checklist at site opening time
	if cfg.PreseedCron != "" {
		c := cron.New()
		_, err := c.AddFunc(cfg.PreseedCron, func() {
			today := time.Now().Format(constants.DateLayout)
			if _, err := dayService.GetOrCreateDay(today); err != nil {
				log.Printf("Failed to pre-seed day %s: %v", today, err)
			}
		})
		if err != nil {
			log.Fatalf("Invalid PRESEED_CRON expression: %v", err)
		}
		c.Start()
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func buildSessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.RedisHost == "" {
		return cookie.NewStore([]byte(cfg.SessionSecret)), nil
	}

	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	return redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
}
