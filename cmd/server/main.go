package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "volunteer-backend/internal/api/http"
	"volunteer-backend/internal/api/http/middleware"
	"volunteer-backend/internal/config"
	"volunteer-backend/internal/jobs"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/repository/store"
	"volunteer-backend/internal/scheduler"
	"volunteer-backend/internal/security"
	"volunteer-backend/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	envFile := flag.String("env-file", ".env", "Optional dotenv file loaded before the configuration")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Failed to load env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Volunteer Management Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format, "environment", cfg.Environment)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())

	// Initialize Database
	connectCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	st, closeStore, err := store.Open(connectCtx, cfg)
	cancel()
	if err != nil {
		logger.Error("Failed to open document store", "driver", cfg.Database.Driver, "error", err)
		log.Fatalf("Failed to open document store: %v", err)
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TokenExpiryMinutes)*time.Minute)
	cookies := httpapi.NewCookiePolicy(cfg.JWT.CookieName, cfg.IsProduction(), tokenManager.Expiry())

	// Initialize Services
	notifier := service.NewSendGridNotifier(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName, cfg.Email.ContactInbox)
	postSvc := service.NewPostService(st.Posts)
	volunteerSvc := service.NewVolunteerService(st.Requests)
	contactSvc := service.NewContactService(st.Contacts, notifier)
	healthSvc := service.NewHealthService(st.Health)

	// Initialize HTTP handlers
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:      httpapi.NewAuthHandler(tokenManager, cookies),
		Posts:     httpapi.NewPostHandler(postSvc),
		Volunteer: httpapi.NewVolunteerHandler(volunteerSvc),
		Contact:   httpapi.NewContactHandler(contactSvc),
		Health:    httpapi.NewHealthHandler(healthSvc),
	}, httpapi.NewAuthMiddleware(tokenManager, cfg.JWT.CookieName))

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	cors := middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.NewServerHandler(router, cors, limiter),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(st, limiter, cfg)
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to register scheduled jobs: %v", err)
	}
	jobRunner.ProbeStoreHealth()
	cronScheduler.Start()

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Shutting down...", "signal", sig.String())

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	cronScheduler.Stop()
	if err := closeStore(shutdownCtx); err != nil {
		logger.Error("Failed to close document store", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
