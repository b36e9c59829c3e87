// Package prerender writes one JSON document per city page ahead of time,
// plus a manifest of the pages it wrote.
package prerender

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/green-city-pages/app/observability/metrics"
	"github.com/FACorreiaa/green-city-pages/internal/types"
)

// ManifestFile is the name of the manifest written next to the pages.
const ManifestFile = "manifest.json"

// CityResolver is the subset of the city service the pre-renderer needs.
type CityResolver interface {
	ListSlugs(ctx context.Context) ([]string, error)
	Resolve(ctx context.Context, slug string) (*types.CityRecord, error)
}

// Manifest describes one pre-render run.
type Manifest struct {
	BuildID     uuid.UUID `json:"buildId"`
	GeneratedAt time.Time `json:"generatedAt"`
	Cities      []string  `json:"cities"`
}

type Prerenderer struct {
	logger      *slog.Logger
	resolver    CityResolver
	metrics     *metrics.AppMetrics
	concurrency int
}

func NewPrerenderer(resolver CityResolver, concurrency int, appMetrics *metrics.AppMetrics, logger *slog.Logger) *Prerenderer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Prerenderer{
		logger:      logger,
		resolver:    resolver,
		metrics:     appMetrics,
		concurrency: concurrency,
	}
}

// Run resolves every listed slug in parallel and writes <outDir>/<slug>.json.
// Slugs that no longer resolve, repeat an earlier slug, or are not usable as a
// file name are skipped. Any other failure aborts the run.
func (p *Prerenderer) Run(ctx context.Context, outDir string) (*Manifest, error) {
	ctx, span := otel.Tracer("Prerenderer").Start(ctx, "Run")
	defer span.End()

	l := p.logger.With(slog.String("method", "Run"), slog.String("out_dir", outDir))

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create output directory")
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	slugs, err := p.resolver.ListSlugs(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list slugs")
		return nil, fmt.Errorf("failed to list city slugs: %w", err)
	}

	pages := p.uniquePages(ctx, l, slugs)
	written := make([]bool, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, slug := range pages {
		g.Go(func() error {
			city, err := p.resolver.Resolve(gctx, slug)
			if errors.Is(err, types.ErrNotFound) {
				l.WarnContext(gctx, "City disappeared between listing and rendering, skipping", slog.String("slug", slug))
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to resolve %q: %w", slug, err)
			}
			if err := writeJSON(filepath.Join(outDir, slug+".json"), city); err != nil {
				return err
			}
			written[i] = true
			p.metrics.PrerenderPagesTotal.Add(gctx, 1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Pre-render failed")
		return nil, err
	}

	manifest := &Manifest{
		BuildID:     uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Cities:      make([]string, 0, len(pages)),
	}
	for i, slug := range pages {
		if written[i] {
			manifest.Cities = append(manifest.Cities, slug)
		}
	}
	if err := writeJSON(filepath.Join(outDir, ManifestFile), manifest); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to write manifest")
		return nil, err
	}

	l.InfoContext(ctx, "Pre-render complete",
		slog.String("build_id", manifest.BuildID.String()),
		slog.Int("pages", len(manifest.Cities)))
	span.SetAttributes(attribute.Int("pages.count", len(manifest.Cities)))
	span.SetStatus(codes.Ok, "Pre-render complete")
	return manifest, nil
}

// uniquePages drops repeated slugs and slugs that would escape outDir or
// clash with the manifest.
func (p *Prerenderer) uniquePages(ctx context.Context, l *slog.Logger, slugs []string) []string {
	seen := make(map[string]struct{}, len(slugs))
	pages := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if slug == "" || slug == "." || slug == ".." || filepath.Base(slug) != slug || slug+".json" == ManifestFile {
			l.WarnContext(ctx, "Slug is not a valid page name, skipping", slog.String("slug", slug))
			continue
		}
		if _, dup := seen[slug]; dup {
			l.WarnContext(ctx, "Duplicate slug, rendering first occurrence only", slog.String("slug", slug))
			continue
		}
		seen[slug] = struct{}{}
		pages = append(pages, slug)
	}
	return pages
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
