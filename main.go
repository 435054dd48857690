package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sirdav1d/geosapiens-challenge/cmd"
	"github.com/sirdav1d/geosapiens-challenge/internal/assets"
	"github.com/sirdav1d/geosapiens-challenge/internal/core/logger"
	"github.com/sirdav1d/geosapiens-challenge/internal/database"
	"github.com/sirdav1d/geosapiens-challenge/internal/middleware"
	"github.com/sirdav1d/geosapiens-challenge/internal/repository"
)

func main() {
	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	// Subcommands (e.g. `geosapiens migrate`) run instead of the server.
	if len(os.Args) > 1 {
		cmd.Execute(context.Background())
		return
	}

	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		appLogger.Fatal("DATABASE_URL environment variable is not set")
	}

	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "./migrations"
	}
	if err := database.RunMigrations(dbURL, migrationsDir, appLogger); err != nil {
		appLogger.Fatal("Database migration failed", zap.Error(err))
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		appLogger.Fatal("Database connection failed", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Connected to the database successfully")

	repo := repository.NewRepository(db)

	assetsRepo := assets.NewRepository(repo)
	if err := assets.SeedAssets(assetsRepo, os.Getenv("APP_SEED") == "true", appLogger); err != nil {
		appLogger.Fatal("Seeding failed", zap.Error(err))
	}

	router := gin.New()
	router.Use(gin.Logger(), middleware.RecoveryMiddleware(appLogger))

	if origins := middleware.ParseAllowedOrigins(os.Getenv("CORS_ALLOWED_ORIGINS")); len(origins) > 0 {
		router.Use(middleware.CORSMiddleware(origins))
	}

	assets.RegisterRoutes(router, repo, appLogger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	host := os.Getenv("APP_HOST")
	if host == "" {
		host = ":8080"
	}
	if err := router.Run(host); err != nil {
		appLogger.Fatal("Server stopped", zap.Error(err))
	}
}
