package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmontes/skillswap-web/internal/api"
	"github.com/jmontes/skillswap-web/internal/cache"
	"github.com/jmontes/skillswap-web/internal/config"
	"github.com/jmontes/skillswap-web/internal/media"
	"github.com/jmontes/skillswap-web/internal/repository/postgres"
	"github.com/jmontes/skillswap-web/internal/service"
	"github.com/jmontes/skillswap-web/internal/websocket"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Redis cache, fails open when unreachable
	c := cache.New(cfg.RedisAddr, cfg.RedisPassword)

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize services
	services := service.NewServices(repos, c, cfg)

	// Background job: sweep scheduled sessions whose end time has passed
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 10m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := services.Completer.CompletePastSessions(ctx); err != nil {
			log.Printf("completer: sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("failed to schedule session completer: %v", err)
	}
	scheduler.Start()

	mediaClient := media.NewClient(cfg.MediaAPIURL, cfg.MediaAPIKey)

	// Initialize router
	router := api.NewRouter(services, hub, mediaClient)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	scheduler.Stop()
	hub.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
