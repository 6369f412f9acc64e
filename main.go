package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"appliance-booking-server/config"
	"appliance-booking-server/database"
	"appliance-booking-server/jobs"
	"appliance-booking-server/middleware"
	"appliance-booking-server/models"
	"appliance-booking-server/routes"
	"appliance-booking-server/services"
	ws "appliance-booking-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers and rate limiting
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Appliance Booking Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Dashboard event hub
	eventHub := ws.NewHub()
	go eventHub.Run()
	routes.InitEventHub(eventHub)

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Public catalog, settings, and callback routes
		routes.RegisterServiceRoutes(api.Group("/services"))
		routes.RegisterSettingsRoutes(api.Group("/settings"))
		routes.RegisterCallbackRoutes(api.Group("/callbacks"))

		// Staff dashboard event feed (token via query parameter)
		routes.RegisterEventFeedRoute(api, eventHub)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.RegisterAuthProtectedRoutes(protected.Group("/auth"))
			routes.RegisterBookingRoutes(protected.Group("/bookings"))
			routes.RegisterEmployeeRoutes(protected.Group("/employee"))
			routes.RegisterReviewRoutes(protected.Group("/reviews"))
			routes.RegisterNotificationRoutes(protected.Group("/notifications"))
			routes.RegisterCareCallbackRoutes(protected.Group("/care"))

			// Admin routes
			adminRoutes := protected.Group("/admin")
			adminRoutes.Use(middleware.RequireRoles(models.RoleAdmin))
			routes.RegisterAdminRoutes(adminRoutes)
		}
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = config.AppConfig.Server.Port
	}

	// Start background jobs
	staleBookingJob := jobs.NewStaleBookingJob()
	staleBookingJob.Start()
	defer staleBookingJob.Stop()

	// Start token cleanup job
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			jwtService := services.NewJWTService()
			if err := jwtService.CleanupExpiredTokens(); err != nil {
				log.Printf("❌ Token cleanup failed: %v", err)
			}
		}
	}()

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
