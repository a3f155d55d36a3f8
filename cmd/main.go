package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"playerslog-backend/internal/auth"
	"playerslog-backend/internal/config"
	"playerslog-backend/internal/database"
	"playerslog-backend/internal/handlers"
	"playerslog-backend/internal/jobs"
	"playerslog-backend/internal/repository"
	"playerslog-backend/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repository
	repo := repository.NewRepository(database.GetDB())

	// Initialize services
	authService := services.NewAuthService(repo)
	userService := services.NewUserService(repo)
	gollService := services.NewGollService(repo)
	adminService := services.NewAdminService(repo)
	gameService := services.NewGameService(database.GetDB(), repo)
	settlementService := services.NewSettlementService(database.GetDB(), repo, cfg.Settlement)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	gameHandler := handlers.NewGameHandler(gameService)
	gollHandler := handlers.NewGollHandler(gollService)
	adminHandler := handlers.NewAdminHandler(adminService)
	settlementHandler := handlers.NewSettlementHandler(settlementService)

	// Start ledger audit job (runs every hour)
	auditJob := jobs.NewLedgerAuditor(repo, time.Hour)
	go auditJob.Start()

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000", // Local admin console
		"http://localhost:5173", // Vite dev server
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	// Add additional frontend URL from environment if provided
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/api/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
	}

	// Authenticated /api/auth/me route
	authProtected := router.Group("/api/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.Me)
	}

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		// Game schedule endpoints
		api.GET("/games", gameHandler.ListGames)
		api.GET("/games/histories", gameHandler.ListGameHistories)
		api.GET("/games/:id", gameHandler.GetGame)
		api.POST("/games", gameHandler.CreateGame)
		api.POST("/games/bulk", gameHandler.BulkCreateGames)
		api.PUT("/games/:id", gameHandler.UpdateGame)
		api.PATCH("/games/:id/status", gameHandler.UpdateGameStatus)
		api.PATCH("/games/:id/score", gameHandler.UpdateGameScore)
		api.DELETE("/games/:id", auth.RequireRole("superadmin"), gameHandler.DeleteGame)

		// Settlement endpoints
		api.GET("/settlements/:gameId", settlementHandler.GetSettlementDetail)
		api.POST("/settlements/:gameId/process", settlementHandler.ProcessSettlement)
		api.DELETE("/settlements/:gameId", settlementHandler.CancelSettlement)
		api.PUT("/settlements/:gameId/result", settlementHandler.ConfirmResult)

		// Goll moderation endpoints
		api.GET("/golls", gollHandler.ListGolls)
		api.GET("/golls/reports", gollHandler.ListReports)
		api.PATCH("/golls/reports/:id", gollHandler.ResolveReport)
		api.GET("/golls/:id", gollHandler.GetGoll)
		api.PATCH("/golls/:id/status", gollHandler.UpdateGollStatus)

		// User management endpoints
		api.GET("/users", userHandler.ListUsers)
		api.GET("/users/:id", userHandler.GetUser)
		api.PATCH("/users/:id/status", userHandler.UpdateUserStatus)
		api.GET("/users/:id/balance", userHandler.GetUserBalance)
	}

	// Admin dashboard routes (protected)
	admin := router.Group("/api/admin")
	admin.Use(auth.AuthMiddleware())
	{
		admin.GET("/dashboard", adminHandler.GetDashboardStats)
		admin.GET("/notifications", adminHandler.GetNotifications)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	auditJob.Stop()

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
