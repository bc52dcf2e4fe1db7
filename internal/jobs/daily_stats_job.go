package jobs

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/kiranacart/marketplace_backend/internal/core/ports/services"
	"github.com/kiranacart/marketplace_backend/internal/middleware"
	"github.com/robfig/cron/v3"
)

// DailyStatsJob rebuilds the previous day's per-agent aggregates from
// settlement history on a schedule. The rebuild is idempotent, so a missed
// or repeated run is harmless.
type DailyStatsJob struct {
	statsService portssvc.StatsSvcFacade
	schedule     string
	cron         *cron.Cron
	logger       *slog.Logger
}

// NewDailyStatsJob creates the nightly stats rebuild job. The schedule is a
// standard cron expression, e.g. "30 0 * * *" for 00:30 every night.
func NewDailyStatsJob(statsService portssvc.StatsSvcFacade, schedule string, logger *slog.Logger) *DailyStatsJob {
	return &DailyStatsJob{
		statsService: statsService,
		schedule:     schedule,
		cron:         cron.New(),
		logger:       logger.With("component", "daily_stats_job"),
	}
}

// Start schedules the rebuild job.
func (j *DailyStatsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := middleware.WithLogger(context.Background(), j.logger)
		yesterday := time.Now().UTC().AddDate(0, 0, -1)

		if err := j.statsService.RebuildDailyStats(ctx, yesterday); err != nil {
			j.logger.ErrorContext(ctx, "Daily stats rebuild failed", "error", err, "date", yesterday.Format("2006-01-02"))
			return
		}
		j.logger.InfoContext(ctx, "Daily stats rebuild completed", "date", yesterday.Format("2006-01-02"))
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Daily stats job started", "schedule", j.schedule)
	return nil
}

// Stop stops the job.
func (j *DailyStatsJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Daily stats job stopped")
}
