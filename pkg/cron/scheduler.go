// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/markwatch/markwatch/internal/domain/scan"
	"github.com/markwatch/markwatch/pkg/config"
)

// Scheduler runs the periodic bulletin watch job.
type Scheduler struct {
	cron      *cron.Cron
	scans     *scan.Service
	watch     config.WatchConfig
	portfolio []string
	logger    *slog.Logger
}

// NewScheduler creates a scheduler that scans the configured bulletin against
// the given portfolio snapshot on the configured cron schedule.
func NewScheduler(scans *scan.Service, watch config.WatchConfig, portfolio []string, logger *slog.Logger) *Scheduler {
	// Standard 5-field cron format, no seconds.
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:      c,
		scans:     scans,
		watch:     watch,
		portfolio: portfolio,
		logger:    logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.watch.Schedule, s.runWatchScan)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.String("schedule", s.watch.Schedule),
		slog.Int("portfolio_marks", len(s.portfolio)),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers the watch scan (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.runWatchScan()
}

// runWatchScan pulls the configured bulletin through the extraction service
// and scans it against the portfolio snapshot.
func (s *Scheduler) runWatchScan() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	s.logger.Info("starting scheduled bulletin scan",
		slog.String("bulletin", s.watch.BulletinURL),
	)

	result, err := s.scans.Run(ctx, scan.RunInput{
		BulletinRef: s.watch.BulletinURL,
		Portfolio:   s.portfolio,
	})
	if err != nil {
		s.logger.Error("scheduled bulletin scan failed", slog.Any("error", err))
		return
	}

	s.logger.Info("scheduled bulletin scan completed",
		slog.String("scan_id", result.ScanID.String()),
		slog.Int("entries", len(result.Entries)),
		slog.Int("matches", len(result.Matches)),
		slog.Int("mentions", len(result.Mentions)),
		slog.Bool("no_conflicts", result.NoConflicts),
	)
}
