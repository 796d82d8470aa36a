package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/eventhive/internal/config"
	"github.com/joshua-takyi/eventhive/internal/connect"
	"github.com/joshua-takyi/eventhive/internal/container"
	"github.com/joshua-takyi/eventhive/internal/helpers"
	"github.com/joshua-takyi/eventhive/internal/routes"
	"github.com/joshua-takyi/eventhive/internal/session"
	"github.com/joshua-takyi/eventhive/internal/storage"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg)
	logger.Info("Starting EventHive API server", "environment", cfg.Environment, "store", cfg.Store)

	ctx := context.Background()

	cld, err := connect.CloudinaryCredentials(cfg)
	if err != nil {
		logger.Error("Failed to connect to Cloudinary", "error", err)
		os.Exit(1)
	}

	gen, err := connect.NewGeminiGenerator(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize Gemini", "error", err)
		os.Exit(1)
	}

	repo, err := storage.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open event store", "error", err)
		os.Exit(1)
	}
	logger.Info("Event store ready", "store", cfg.Store)

	var provider session.Provider = session.Anonymous{}
	if cfg.HasSupabase() {
		supaClient, err := connect.InitSupabase(cfg)
		if err != nil {
			logger.Error("Failed to connect to Supabase", "error", err)
			os.Exit(1)
		}
		sp, err := session.NewSupabaseProvider(ctx, supaClient, cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.SupabaseJWTSecret)
		if err != nil {
			logger.Error("Failed to set up session provider", "error", err)
			os.Exit(1)
		}
		provider = sp
		logger.Info("Connected to Supabase successfully")
	} else {
		logger.Warn("Supabase not configured, sessions are anonymous")
	}

	rdb := connect.RedisConnect(cfg)
	if rdb == nil && cfg.RateLimitEnabled {
		logger.Warn("Redis unavailable, rate limiting disabled", "addr", cfg.RedisAddr)
	}

	// Initialize dependency container
	appContainer := container.NewContainer(cfg, logger, container.Deps{
		EventsRepo: repo,
		MediaHost:  helpers.NewCloudinaryHost(cld, helpers.EventsFolder),
		Generator:  gen,
		Session:    provider,
		Redis:      rdb,
	})

	if err := appContainer.Janitor.Start(cfg.JanitorSchedule); err != nil {
		logger.Error("Failed to start upload janitor", "error", err)
		os.Exit(1)
	}

	// Setup routes
	router := routes.SetupRoutes(appContainer)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	appContainer.Close(shutdownCtx)

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(cfg.LogLevel, slog.LevelInfo),
		})
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(cfg.LogLevel, slog.LevelDebug),
		})
	}

	return slog.New(handler)
}

func parseLevel(s string, fallback slog.Level) slog.Level {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return fallback
	}
	return lvl
}
