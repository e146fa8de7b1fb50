package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/msibaramdora/visitor-management-api/internal/config"
	"github.com/msibaramdora/visitor-management-api/internal/constants"
	"github.com/msibaramdora/visitor-management-api/internal/database"
	"github.com/msibaramdora/visitor-management-api/internal/handlers"
	"github.com/msibaramdora/visitor-management-api/internal/middleware"
	"github.com/msibaramdora/visitor-management-api/internal/models"
	"github.com/msibaramdora/visitor-management-api/internal/repository"
	"github.com/msibaramdora/visitor-management-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations and seed the default accounts
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Wire repositories, services and handlers
	userRepo := repository.NewUserRepository(db)
	visitRepo := repository.NewVisitRepository(db)

	authService := services.NewAuthService(userRepo)
	visitService := services.NewVisitService(visitRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	visitHandler := handlers.NewVisitHandler(visitService)
	watchmanHandler := handlers.NewWatchmanHandler(visitService)

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware
	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Resolve the caller identity on every request
	r.Use(middleware.Identity(authService))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Visitor Management API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)
		api.GET("/user", middleware.RequireAuth(), authHandler.GetCurrentUser)

		// Employee directory (public: the registration page needs it)
		api.GET("/employees", authHandler.ListEmployees)

		// Visit routes
		visits := api.Group("/visits")
		{
			visits.GET("", middleware.RequireAuth(), visitHandler.ListVisits)
			visits.POST("/invite", middleware.RequireRole(models.RoleEmployee), visitHandler.CreateInvite)
			visits.GET("/invite/:token", visitHandler.GetInvite)
			visits.PATCH("/invite/:token", visitHandler.AcceptInvite)
			visits.POST("/register", visitHandler.GateRegister)
			visits.PATCH("/:id/status", middleware.RequireRole(models.RoleEmployee), visitHandler.UpdateStatus)
			visits.GET("/:id", middleware.RequireRole(models.RoleWatchman), visitHandler.GetVisit)
		}

		// Watchman routes
		watchman := api.Group("/watchman", middleware.RequireRole(models.RoleWatchman))
		{
			watchman.GET("/stats", watchmanHandler.Stats)
			watchman.PATCH("/visits/:id/checkin", watchmanHandler.CheckIn)
			watchman.PATCH("/visits/:id/checkout", watchmanHandler.CheckOut)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newSessionStore builds a Redis-backed session store when REDIS_HOST is
// configured and falls back to an in-process cookie store otherwise.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store

	if cfg.RedisHost != "" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		s, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // username (empty for default user)
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = s
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})

	return store, nil
}
