package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Azim18821/track3-sub004/internal/api"
	"github.com/Azim18821/track3-sub004/internal/config"
	"github.com/Azim18821/track3-sub004/internal/generation"
	"github.com/Azim18821/track3-sub004/internal/repository/mongo"
	"github.com/Azim18821/track3-sub004/internal/service"
	"github.com/Azim18821/track3-sub004/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Fitness Coach Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureFitnessPlanIndexes(ctx, appDB.Collection("fitness_plans"))
		mongo.EnsureProgressIndexes(ctx, appDB.Collection("generation_progress"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Plan Archive ---
	log.Println("Initializing plan archive...")
	var planArchive storage.PlanArchive
	if cfg.S3.BucketName != "" {
		planArchive, err = storage.NewS3Archive(cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 plan archive: %v", err)
		}
	} else {
		log.Println("No S3 bucket configured; plan archiving disabled.")
	}

	// --- Initialize Text Generator ---
	textGen, err := generation.NewGeminiGenerator(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Gemini client: %v", err)
	}
	if closer, ok := textGen.(generation.Closer); ok {
		defer closer.Close()
	}
	planGenerator := generation.NewPlanGenerator(textGen)

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	planRepo := mongo.NewMongoFitnessPlanRepository(appDB)
	progressRepo := mongo.NewMongoProgressRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	eligibility := service.NewCooldownChecker(planRepo, cfg.Generation.CooldownDays)
	coachService := service.NewCoachService(
		userRepo,
		planRepo,
		progressRepo,
		planGenerator,
		eligibility,
		planArchive,
		service.GenerationSettings{
			StepTimeout:  cfg.Generation.StepTimeout,
			MaxRetries:   cfg.Generation.MaxRetries,
			RetryDelay:   cfg.Generation.RetryDelay,
			StepEstimate: cfg.Generation.StepEstimate,
		},
	)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, coachService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
