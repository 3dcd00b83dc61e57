package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/raphaelgruber/spheres-go/internal/jsontree"
	"github.com/raphaelgruber/spheres-go/internal/metrics"
	"github.com/raphaelgruber/spheres-go/internal/models"
)

// Fetcher supplies the raw sphere payload.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// Placer receives every displayed sphere, in order.
type Placer interface {
	Place(sphere models.ClassifiedSphere)
}

// ImportConfig configures an ImportService. Zero fields get defaults.
type ImportConfig struct {
	// Boundary is the outer sphere; zero radius means DefaultBoundary
	Boundary Boundary
	// Logger defaults to slog.Default()
	Logger *slog.Logger
	// Metrics records stage timings (optional)
	Metrics *metrics.Collector
	// Reporter receives the counts of each successful import (optional)
	Reporter Reporter
	// Placer receives displayed spheres (optional)
	Placer Placer
}

// ImportService runs the decode, extract, filter and classify pipeline.
type ImportService struct {
	boundary Boundary
	logger   *slog.Logger
	metrics  *metrics.Collector
	reporter Reporter
	placer   Placer
}

// NewImportService creates a new import service.
func NewImportService(cfg ImportConfig) *ImportService {
	if cfg.Boundary.Radius == 0 {
		cfg.Boundary = DefaultBoundary()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &ImportService{
		boundary: cfg.Boundary,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		reporter: cfg.Reporter,
		placer:   cfg.Placer,
	}
}

// Boundary returns the outer sphere used for filtering.
func (s *ImportService) Boundary() Boundary {
	return s.boundary
}

// Run converts a complete payload into classified spheres and counts.
// It has no side effects and fails only when raw is not well-formed JSON,
// in which case no partial result is returned.
func (s *ImportService) Run(raw []byte) (*models.ImportResult, error) {
	return s.run(raw, nil)
}

// Import fetches the payload, runs the pipeline, places displayed spheres
// and reports the counts. Fetch errors are returned unchanged; on any error
// nothing is placed or reported.
func (s *ImportService) Import(ctx context.Context, fetcher Fetcher) (*models.ImportResult, error) {
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)

	logger.Info("started sphere import", "radius", s.boundary.Radius)

	start := time.Now()
	raw, err := fetcher.Fetch(ctx)
	if err != nil {
		s.recordError(metrics.OpFetch)
		logger.Error("sphere fetch failed", "error", err)
		return nil, err
	}
	s.recordTiming(metrics.OpFetch, time.Since(start))
	logger.Debug("received sphere definitions", "bytes", len(raw))

	result, err := s.run(raw, s.recordTiming)
	if err != nil {
		s.recordError(metrics.OpDecode)
		logger.Error("sphere payload rejected", "error", err)
		return nil, err
	}

	if s.placer != nil {
		for _, sphere := range result.Spheres {
			s.placer.Place(sphere)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordSpheres(result.Report.Displayed, result.Report.Filtered)
	}
	logger.Info("finished sphere import",
		"displayed", result.Report.Displayed,
		"filtered", result.Report.Filtered,
		"duration", time.Since(start))

	if s.reporter != nil {
		s.reporter.Report(result.Report)
	}

	return result, nil
}

func (s *ImportService) run(raw []byte, observe func(op string, d time.Duration)) (*models.ImportResult, error) {
	if observe == nil {
		observe = func(string, time.Duration) {}
	}

	start := time.Now()
	root, err := jsontree.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode spheres: %w", err)
	}
	observe(metrics.OpDecode, time.Since(start))

	start = time.Now()
	records := ExtractSpheres(root)
	observe(metrics.OpExtract, time.Since(start))

	start = time.Now()
	partition := FilterSpheres(s.boundary, records)
	spheres := make([]models.ClassifiedSphere, 0, len(partition.Displayed))
	for _, r := range partition.Displayed {
		spheres = append(spheres, models.Classify(r))
	}
	observe(metrics.OpFilter, time.Since(start))

	return &models.ImportResult{
		Report:  partition.Report(),
		Spheres: spheres,
	}, nil
}

func (s *ImportService) recordTiming(op string, d time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordTiming(op, d)
	}
}

func (s *ImportService) recordError(op string) {
	if s.metrics != nil {
		s.metrics.RecordError(op)
	}
}
