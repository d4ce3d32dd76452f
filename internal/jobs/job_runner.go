package jobs

import (
	"fmt"
	"time"

	"volunteer-backend/internal/config"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/metrics"
	"volunteer-backend/internal/repository"
)

// LimiterCleaner drops per-client limiter state idle for longer than maxIdle
type LimiterCleaner interface {
	Cleanup(maxIdle time.Duration) int
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store   *repository.Store
	limiter LimiterCleaner
	config  *config.Config
	now     func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *repository.Store, limiter LimiterCleaner, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:   store,
		limiter: limiter,
		config:  cfg,
		now:     time.Now,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery and records the
// outcome of every run.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func() error) {
	success := false
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", fmt.Sprint(r))
		}
		metrics.RecordJobRun(jobName, success)
	}()

	logger.Debug("Starting job", "job", jobName)
	start := time.Now()
	if err := jobFunc(); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err)
		return
	}
	success = true
	logger.Debug("Job completed", "job", jobName, "duration_ms", time.Since(start).Milliseconds())
}

// RunAll runs every job once (for manual execution and startup)
func (jr *JobRunner) RunAll() {
	jr.ProbeStoreHealth()
	jr.ReportExpiringPosts()
	jr.CleanupRateLimiter()
}
