package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"volunteer-backend/internal/config"
	"volunteer-backend/internal/jobs"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/repository/store"
	"volunteer-backend/internal/scheduler"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	envFile := flag.String("env-file", ".env", "Optional dotenv file loaded before the configuration")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'expiring-posts-report', 'all')")
	flag.Parse()

	_ = godotenv.Load(*envFile)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Volunteer Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	connectCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	st, closeStore, err := store.Open(connectCtx, cfg)
	cancel()
	if err != nil {
		logger.Error("Failed to open document store", "error", err)
		log.Fatalf("Failed to open document store: %v", err)
	}
	defer closeStore(context.Background())

	// The standalone runner has no HTTP traffic, so no rate limiter to clean
	jobRunner := jobs.NewJobRunner(st, nil, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if !runJobOnce(jobRunner, *runOnce) {
			closeStore(context.Background())
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to register scheduled jobs: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once, reporting whether the name was known
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) bool {
	switch jobName {
	case "store-health-probe":
		jobRunner.ProbeStoreHealth()
	case "expiring-posts-report":
		jobRunner.ReportExpiringPosts()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - store-health-probe\n")
		fmt.Printf("  - expiring-posts-report\n")
		fmt.Printf("  - all\n")
		return false
	}
	return true
}
