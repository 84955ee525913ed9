// Package scan orchestrates a bulletin watch run: obtain page text, parse it
// into filing entries, score the denominative entries against the caller's
// portfolio, and screen the raw text for verbatim portfolio mentions.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/markwatch/markwatch/internal/domain/bulletin"
	"github.com/markwatch/markwatch/internal/domain/portfolio"
	"github.com/markwatch/markwatch/internal/domain/screening"
	"github.com/markwatch/markwatch/internal/domain/similarity"
)

// ErrNoExtractor is returned when a run references a bulletin by URL but no
// extraction client is configured.
var ErrNoExtractor = errors.New("no extraction service configured")

// Extractor is the boundary to the external text-extraction service that
// turns a bulletin PDF into per-page text and images. Extraction is the only
// stage of a run expected to block.
type Extractor interface {
	Extract(ctx context.Context, bulletinRef string) (pages []string, images [][]bulletin.PageImage, err error)
}

// RunInput describes one watch run. Either Pages (with optional Images) is
// supplied inline, or BulletinRef names a bulletin for the extraction
// service to process.
type RunInput struct {
	BulletinRef string
	Pages       []string
	Images      [][]bulletin.PageImage
	Portfolio   []string
}

// RunResult is the outcome of one watch run. A run with zero matches is a
// successful run; NoConflicts lets callers present it as a positive outcome.
type RunResult struct {
	ScanID       uuid.UUID                `json:"scan_id"`
	Entries      []bulletin.FilingEntry   `json:"entries"`
	Denominative int                      `json:"denominative"`
	Mixed        int                      `json:"mixed"`
	Matches      []similarity.MatchResult `json:"matches"`
	Mentions     []screening.Mention      `json:"mentions"`
	NoConflicts  bool                     `json:"no_conflicts"`
	Duration     time.Duration            `json:"-"`
}

// Service wires the pipeline stages together.
type Service struct {
	extractor Extractor
	matcher   *similarity.Matcher
	index     *bulletin.Index
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewService creates a scan service. Extraction and search indexing are
// optional collaborators added with the With* methods.
func NewService(logger *slog.Logger) *Service {
	return &Service{
		matcher: similarity.NewMatcher(),
		logger:  logger,
		tracer:  otel.Tracer("github.com/markwatch/markwatch/internal/domain/scan"),
	}
}

// WithExtractor adds an extraction client for URL-referenced bulletins.
func (s *Service) WithExtractor(extractor Extractor) *Service {
	s.extractor = extractor
	return s
}

// WithIndex adds a filing search index that each run repopulates.
func (s *Service) WithIndex(index *bulletin.Index) *Service {
	s.index = index
	return s
}

// Index exposes the filing search index, nil when indexing is disabled.
func (s *Service) Index() *bulletin.Index {
	return s.index
}

// Run executes one watch run. The only error sources are the extraction
// boundary and a missing extractor; sparse or unrecognizable bulletin text
// degrades to smaller output, never to an error.
func (s *Service) Run(ctx context.Context, input RunInput) (*RunResult, error) {
	ctx, span := s.tracer.Start(ctx, "scan.run")
	defer span.End()

	start := time.Now()
	scanID := uuid.New()

	pages, images := input.Pages, input.Images
	if len(pages) == 0 && input.BulletinRef != "" {
		if s.extractor == nil {
			return nil, ErrNoExtractor
		}
		var err error
		pages, images, err = s.extract(ctx, input.BulletinRef)
		if err != nil {
			scansTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("failed to extract bulletin: %w", err)
		}
	}

	_, parseSpan := s.tracer.Start(ctx, "scan.parse")
	parsed := bulletin.Parse(pages, images)
	parseSpan.SetAttributes(
		attribute.Int("bulletin.pages", parsed.Pages),
		attribute.Int("bulletin.entries", len(parsed.Entries)),
	)
	parseSpan.End()

	denominative := parsed.Denominative()
	mixed := len(parsed.Entries) - len(denominative)

	owned := portfolio.Normalize(input.Portfolio)

	_, matchSpan := s.tracer.Start(ctx, "scan.match")
	matches := s.matcher.Match(denominative, owned)
	matchSpan.SetAttributes(attribute.Int("scan.matches", len(matches)))
	matchSpan.End()

	mentions := screening.NewEngine(owned).Screen(pages)

	if s.index != nil {
		if err := s.index.IndexEntries(parsed.Entries); err != nil {
			s.logger.Warn("failed to index filings for search",
				slog.String("scan_id", scanID.String()),
				slog.Any("error", err),
			)
		}
	}

	duration := time.Since(start)
	scansTotal.WithLabelValues("ok").Inc()
	entriesParsed.Add(float64(len(parsed.Entries)))
	conflictsFound.Add(float64(len(matches)))
	scanDuration.Observe(duration.Seconds())

	s.logger.Info("bulletin scan completed",
		slog.String("scan_id", scanID.String()),
		slog.Int("pages", parsed.Pages),
		slog.Int("entries", len(parsed.Entries)),
		slog.Int("denominative", len(denominative)),
		slog.Int("mixed", mixed),
		slog.Int("matches", len(matches)),
		slog.Int("mentions", len(mentions)),
		slog.Duration("duration", duration),
	)

	return &RunResult{
		ScanID:       scanID,
		Entries:      parsed.Entries,
		Denominative: len(denominative),
		Mixed:        mixed,
		Matches:      matches,
		Mentions:     mentions,
		NoConflicts:  len(matches) == 0,
		Duration:     duration,
	}, nil
}

func (s *Service) extract(ctx context.Context, bulletinRef string) ([]string, [][]bulletin.PageImage, error) {
	ctx, span := s.tracer.Start(ctx, "scan.extract",
		trace.WithAttributes(attribute.String("bulletin.ref", bulletinRef)))
	defer span.End()

	return s.extractor.Extract(ctx, bulletinRef)
}
