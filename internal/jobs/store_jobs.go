package jobs

import (
	"context"
	"time"

	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/metrics"
)

const (
	probeTimeout   = 5 * time.Second
	reportTimeout  = 30 * time.Second
	expiringWindow = 24 * time.Hour
	limiterMaxIdle = 10 * time.Minute
)

// ProbeStoreHealth pings the document store and publishes the result as a gauge
func (jr *JobRunner) ProbeStoreHealth() {
	jr.runWithRecovery("ProbeStoreHealth", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()

		err := jr.store.Health.Ping(ctx)
		metrics.SetStoreUp(err == nil)
		return err
	})
}

// ReportExpiringPosts counts posts whose deadline falls within the next day
func (jr *JobRunner) ReportExpiringPosts() {
	jr.runWithRecovery("ReportExpiringPosts", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()

		from := jr.now().UTC()
		n, err := jr.store.Posts.CountExpiringBetween(ctx, from, from.Add(expiringWindow))
		if err != nil {
			return err
		}
		metrics.SetExpiringPosts(n)
		logger.Info("Posts expiring within a day", "count", n)
		return nil
	})
}

// CleanupRateLimiter forgets clients that have not sent a request recently
func (jr *JobRunner) CleanupRateLimiter() {
	jr.runWithRecovery("CleanupRateLimiter", func() error {
		if jr.limiter == nil {
			return nil
		}
		removed := jr.limiter.Cleanup(limiterMaxIdle)
		if removed > 0 {
			logger.Info("Dropped idle rate limiter entries", "removed", removed)
		}
		return nil
	})
}
