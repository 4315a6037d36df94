package main

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/hanifzr/expense-reporting-service/docs"
	"github.com/hanifzr/expense-reporting-service/internal/config"
	"github.com/hanifzr/expense-reporting-service/internal/currency"
	"github.com/hanifzr/expense-reporting-service/internal/database"
	"github.com/hanifzr/expense-reporting-service/internal/domain"
	"github.com/hanifzr/expense-reporting-service/internal/extract"
	"github.com/hanifzr/expense-reporting-service/internal/handler"
	"github.com/hanifzr/expense-reporting-service/internal/middleware"
	"github.com/hanifzr/expense-reporting-service/internal/ocr"
	"github.com/hanifzr/expense-reporting-service/internal/repository"
	"github.com/hanifzr/expense-reporting-service/internal/server"
	"github.com/hanifzr/expense-reporting-service/internal/service"
	"github.com/hanifzr/expense-reporting-service/internal/storage"
)

func main() {
	// Load configuration
	log.Println("Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to the database
	log.Println("Connecting to database...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Initialize repositories
	expenseRepo := repository.NewPostgresExpenseRepository(db.Pool())
	approvalRepo := repository.NewPostgresApprovalRepository(db.Pool())
	userRepo := repository.NewPostgresUserRepository(db.Pool())

	// Select the receipt store: S3-compatible bucket when configured,
	// local disk otherwise
	var store storage.ReceiptStore
	var localStore *storage.LocalStore
	if cfg.SupabaseURL != "" {
		log.Println("Using S3 receipt storage...")
		store, err = storage.NewS3Store(&storage.S3Config{
			Endpoint:        cfg.SupabaseURL,
			AccessKeyID:     cfg.SupabaseAPIKey,
			AccessKeySecret: cfg.SupabaseAPIKey,
			Bucket:          cfg.SupabaseBucket,
			Region:          cfg.SupabaseRegion,
		})
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Printf("Using local receipt storage in %q...", cfg.UploadsDir)
		localStore, err = storage.NewLocalStore(cfg.UploadsDir, "/uploads")
		if err != nil {
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
		store = localStore
	}

	// Build the extraction engine around the Tesseract provider
	log.Println("Creating receipt extraction engine...")
	provider := ocr.NewTesseractProvider(cfg.OCRLanguage)
	engine := extract.NewEngine(provider, nil, nil)

	// Create services
	extractionService := service.NewExtractionService(engine, store, cfg.MaxWorkers)
	expenseService := service.NewExpenseService(expenseRepo, store)
	approvalService := service.NewApprovalService(approvalRepo, currency.NewClient())
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenExpiry)

	// Create handlers
	uploadHandler := handler.NewUploadHandler(extractionService, cfg.MaxUploadSize)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	approvalHandler := handler.NewApprovalHandler(approvalService)
	authHandler := handler.NewAuthHandler(authService, cfg.TokenExpiry)

	// Create and configure server
	log.Println("Configuring server...")
	appServer := server.NewServer(cfg, db)
	if localStore != nil {
		appServer.ServeUploads(localStore.BaseDir())
	}

	// Register routes
	router := appServer.GetRouter()
	authMiddleware := middleware.AuthMiddleware(authService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	reviewerOnly := middleware.RequireRole(domain.RoleAdmin, domain.RoleManager, domain.RoleDirector)

	authHandler.RegisterRoutes(router)
	uploadHandler.RegisterRoutes(router, authMiddleware)
	expenseHandler.RegisterRoutes(router, authMiddleware, adminOnly)
	approvalHandler.RegisterRoutes(router, authMiddleware, reviewerOnly)

	// Start server (blocking call)
	log.Printf("Starting server on port %d...", cfg.Port)
	if err := appServer.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	fmt.Println("Server shutdown complete")
}
