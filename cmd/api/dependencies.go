package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/markwatch/markwatch/internal/domain/bulletin"
	"github.com/markwatch/markwatch/internal/domain/portfolio"
	"github.com/markwatch/markwatch/internal/domain/scan"
	"github.com/markwatch/markwatch/internal/domain/scan/handler"
	"github.com/markwatch/markwatch/pkg/config"
	"github.com/markwatch/markwatch/pkg/cron"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	FilingIndex *bulletin.Index
	ScanService *scan.Service
	ScanHandler *handler.ScanHandler
	Scheduler   *cron.Scheduler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	index, err := bulletin.NewIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to init filing index: %w", err)
	}
	deps.FilingIndex = index

	service := scan.NewService(logger).WithIndex(index)
	if cfg.Extractor.BaseURL != "" {
		timeout := time.Duration(cfg.Extractor.TimeoutSeconds) * time.Second
		service = service.WithExtractor(scan.NewHTTPExtractor(cfg.Extractor.BaseURL, timeout))
	}
	deps.ScanService = service

	deps.ScanHandler = handler.NewScanHandler(service, logger)

	if cfg.Watch.Enabled {
		marks, err := loadWatchPortfolio(cfg.Watch.PortfolioPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load watch portfolio: %w", err)
		}
		deps.Scheduler = cron.NewScheduler(service, cfg.Watch, marks, logger)
	}

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// loadWatchPortfolio reads the owned-marks CSV used by scheduled scans.
func loadWatchPortfolio(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open portfolio CSV: %w", err)
	}
	defer f.Close()

	return portfolio.LoadCSV(f)
}
