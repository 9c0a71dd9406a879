package app

import (
	"context"
	"time"

	"github.com/gracepath/core/internal/pkg/cache"
	pkgcron "github.com/gracepath/core/internal/pkg/cron"
	"go.uber.org/zap"
)

const (
	jobSweepRateWindows   = "sweep-rate-windows"
	jobSweepResponseCache = "sweep-response-cache"
)

// registerCronJobs registers the housekeeping jobs of the in-process and
// SQLite stores. Redis expires its keys on its own.
func (a *App) registerCronJobs() {
	interval := a.cfg.Cache.SweepInterval
	cronLogger := a.logger.Named("CronService")

	if a.memRate != nil {
		store := a.memRate
		a.sched.Register(pkgcron.Job{
			Name:        jobSweepRateWindows,
			Description: "drop expired rate limit windows",
			Interval:    interval,
			Fn: func(ctx context.Context) error {
				if n := store.Sweep(time.Now()); n > 0 {
					cronLogger.Debug("rate limit windows swept", zap.Int("removed", n))
				}
				return nil
			},
		})
	}

	if sweeper, ok := a.cache.(cache.Sweeper); ok {
		a.sched.Register(pkgcron.Job{
			Name:        jobSweepResponseCache,
			Description: "drop expired cache entries",
			Interval:    interval,
			Fn: func(ctx context.Context) error {
				n, err := sweeper.Sweep(ctx, time.Now())
				if err != nil {
					return err
				}
				if n > 0 {
					cronLogger.Debug("cache entries swept", zap.Int("removed", n))
				}
				return nil
			},
		})
	}
}
