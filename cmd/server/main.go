package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"video-backend/internal/auth"
	"video-backend/internal/cache"
	"video-backend/internal/config"
	"video-backend/internal/database"
	"video-backend/internal/db"
	"video-backend/internal/handlers"
	"video-backend/internal/health"
	h "video-backend/internal/http"
	"video-backend/internal/images"
	"video-backend/internal/live"
	"video-backend/internal/middleware"
	"video-backend/internal/repositories"
	"video-backend/internal/services"
	"video-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (login will use bcrypt only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	// Uses embedded migrations for standalone binary operation
	log.Println("Running database migrations...")
	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Poster/photo image service (S3 presigning optional)
	imageService := images.NewService(cfg)

	// Live availability broadcast hub
	hub := live.NewHub()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	filmRepo := repositories.NewFilmRepository(pool)
	actorRepo := repositories.NewActorRepository(pool)
	inventoryRepo := repositories.NewInventoryRepository(pool)
	rentalRepo := repositories.NewRentalRepository(pool)

	// Initialize services
	userService := services.NewUserService(userRepo, jwtManager)
	filmService := services.NewFilmService(filmRepo, inventoryRepo, imageService)
	actorService := services.NewActorService(actorRepo, imageService)
	customerService := services.NewCustomerService(customerRepo, rentalRepo)
	rentalService := services.NewRentalService(rentalRepo, customerRepo, inventoryRepo, hub)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	filmHandler := handlers.NewFilmHandler(filmService)
	actorHandler := handlers.NewActorHandler(actorService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	rentalHandler := handlers.NewRentalHandler(rentalService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		userHandler,
		filmHandler,
		actorHandler,
		customerHandler,
		rentalHandler,
		healthHandler,
		hub,
		authMiddleware,
	)

	// Middleware chain: recovery outermost, then logging, then CORS. Metrics
	// attach inside the router so they can label by route template.
	handler := middleware.PanicRecovery(
		middleware.RequestLogging(
			corsMiddleware(router),
		),
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
