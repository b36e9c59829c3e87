package city

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/green-city-pages/app/observability/metrics"
	"github.com/FACorreiaa/green-city-pages/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	// ListSlugs returns one slug per dataset row in file order, or the
	// fallback slugs when the dataset is unavailable or empty.
	ListSlugs(ctx context.Context) ([]string, error)

	// Resolve returns the normalized record for slug.
	// Returns types.ErrNotFound if no row (or fallback entry) matches.
	Resolve(ctx context.Context, slug string) (*types.CityRecord, error)
}

type ServiceImpl struct {
	logger    *slog.Logger
	repo      Repository
	overrides types.CityOverrides
	metrics   *metrics.AppMetrics
}

func NewCityService(repo Repository, overrides types.CityOverrides, appMetrics *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		repo:      repo,
		overrides: overrides,
		metrics:   appMetrics,
	}
}

func (s *ServiceImpl) ListSlugs(ctx context.Context) ([]string, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "ListSlugs")
	defer span.End()

	l := s.logger.With(slog.String("method", "ListSlugs"))

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Context done")
		return nil, err
	}

	records := s.loadDataset(ctx, l)
	if len(records) == 0 {
		slugs := append([]string(nil), fallbackSlugs...)
		span.SetAttributes(attribute.Bool("dataset.fallback", true), attribute.Int("cities.count", len(slugs)))
		span.SetStatus(codes.Ok, "Fallback slugs returned")
		return slugs, nil
	}

	slugs := make([]string, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		slug := Slugify(record.Name())
		if _, dup := seen[slug]; dup {
			l.WarnContext(ctx, "Duplicate city slug in dataset, only the first row is reachable", slog.String("slug", slug))
		}
		seen[slug] = struct{}{}
		slugs = append(slugs, slug)
	}

	l.DebugContext(ctx, "Listed city slugs", slog.Int("count", len(slugs)))
	span.SetAttributes(attribute.Int("cities.count", len(slugs)))
	span.SetStatus(codes.Ok, "Slugs listed")
	return slugs, nil
}

func (s *ServiceImpl) Resolve(ctx context.Context, slug string) (*types.CityRecord, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "Resolve", trace.WithAttributes(
		attribute.String("city.slug", slug),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Resolve"), slog.String("slug", slug))

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Context done")
		return nil, err
	}

	records := s.loadDataset(ctx, l)
	if len(records) == 0 {
		fallback, ok := fallbackCities[slug]
		if !ok {
			s.recordOutcome(ctx, "not_found")
			span.SetStatus(codes.Error, "City not found in fallback table")
			return nil, fmt.Errorf("fallback lookup %q: %w", slug, types.ErrNotFound)
		}
		s.recordOutcome(ctx, "fallback")
		span.SetAttributes(attribute.Bool("dataset.fallback", true))
		span.SetStatus(codes.Ok, "City resolved from fallback table")
		return &fallback, nil
	}

	for _, record := range records {
		if Slugify(record.Name()) != slug {
			continue
		}
		city := formatCityRecord(record, s.overrides[slug])
		s.recordOutcome(ctx, "dataset")
		l.DebugContext(ctx, "City resolved from dataset")
		span.SetStatus(codes.Ok, "City resolved from dataset")
		return city, nil
	}

	s.recordOutcome(ctx, "not_found")
	span.SetStatus(codes.Error, "City not found in dataset")
	return nil, fmt.Errorf("dataset lookup %q: %w", slug, types.ErrNotFound)
}

// loadDataset never fails: dataset errors are logged and reported as an empty
// dataset so callers fall back to the embedded table.
func (s *ServiceImpl) loadDataset(ctx context.Context, l *slog.Logger) []types.RawCityRecord {
	start := time.Now()
	records, err := s.repo.LoadDataset(ctx)
	s.metrics.DatasetLoadDurationSeconds.Record(ctx, time.Since(start).Seconds())

	switch {
	case errors.Is(err, types.ErrDatasetMalformed):
		l.ErrorContext(ctx, "City dataset could not be parsed, using fallback table", slog.Any("error", err))
		s.recordFallback(ctx, "malformed")
		return nil
	case err != nil:
		l.WarnContext(ctx, "City dataset unavailable, using fallback table", slog.Any("error", err))
		s.recordFallback(ctx, "unavailable")
		return nil
	case len(records) == 0:
		l.WarnContext(ctx, "City dataset is empty, using fallback table")
		s.recordFallback(ctx, "empty")
		return nil
	}
	return records
}

func (s *ServiceImpl) recordOutcome(ctx context.Context, outcome string) {
	s.metrics.CityResolveTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (s *ServiceImpl) recordFallback(ctx context.Context, reason string) {
	s.metrics.DatasetFallbackTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
