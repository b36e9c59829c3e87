package prerender

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/FACorreiaa/green-city-pages/app/observability/metrics"
	"github.com/FACorreiaa/green-city-pages/internal/types"
)

type MockCityResolver struct {
	mock.Mock
}

func (m *MockCityResolver) ListSlugs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCityResolver) Resolve(ctx context.Context, slug string) (*types.CityRecord, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CityRecord), args.Error(1)
}

func setupPrerendererTest(t *testing.T) (*Prerenderer, *MockCityResolver) {
	t.Helper()
	appMetrics, err := metrics.NewAppMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	resolver := new(MockCityResolver)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPrerenderer(resolver, 2, appMetrics, logger), resolver
}

func readManifest(t *testing.T, dir string) Manifest {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	require.NoError(t, err)
	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestPrerenderer_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("writes one page per slug and a manifest", func(t *testing.T) {
		p, resolver := setupPrerendererTest(t)
		out := filepath.Join(t.TempDir(), "out")
		slugs := []string{"new-york-city", "tokyo", "sydney"}
		resolver.On("ListSlugs", mock.Anything).Return(slugs, nil).Once()
		for _, slug := range slugs {
			resolver.On("Resolve", mock.Anything, slug).Return(&types.CityRecord{Name: slug, Radius: "100"}, nil).Once()
		}

		manifest, err := p.Run(ctx, out)
		require.NoError(t, err)
		assert.Equal(t, slugs, manifest.Cities)
		assert.NotEqual(t, uuid.Nil, manifest.BuildID)

		for _, slug := range slugs {
			data, err := os.ReadFile(filepath.Join(out, slug+".json"))
			require.NoError(t, err)
			var city types.CityRecord
			require.NoError(t, json.Unmarshal(data, &city))
			assert.Equal(t, slug, city.Name)
		}

		onDisk := readManifest(t, out)
		assert.Equal(t, manifest.BuildID, onDisk.BuildID)
		assert.Equal(t, slugs, onDisk.Cities)
		resolver.AssertExpectations(t)
	})

	t.Run("skips slugs that no longer resolve", func(t *testing.T) {
		p, resolver := setupPrerendererTest(t)
		out := t.TempDir()
		resolver.On("ListSlugs", mock.Anything).Return([]string{"tokyo", "gone"}, nil).Once()
		resolver.On("Resolve", mock.Anything, "tokyo").Return(&types.CityRecord{Name: "Tokyo"}, nil).Once()
		resolver.On("Resolve", mock.Anything, "gone").Return(nil, types.ErrNotFound).Once()

		manifest, err := p.Run(ctx, out)
		require.NoError(t, err)
		assert.Equal(t, []string{"tokyo"}, manifest.Cities)
		assert.NoFileExists(t, filepath.Join(out, "gone.json"))
	})

	t.Run("renders duplicate slugs once", func(t *testing.T) {
		p, resolver := setupPrerendererTest(t)
		resolver.On("ListSlugs", mock.Anything).Return([]string{"tokyo", "tokyo"}, nil).Once()
		resolver.On("Resolve", mock.Anything, "tokyo").Return(&types.CityRecord{Name: "Tokyo"}, nil).Once()

		manifest, err := p.Run(ctx, t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, []string{"tokyo"}, manifest.Cities)
		resolver.AssertExpectations(t)
	})

	t.Run("skips slugs that are not file names", func(t *testing.T) {
		p, resolver := setupPrerendererTest(t)
		out := t.TempDir()
		resolver.On("ListSlugs", mock.Anything).Return([]string{"../escape", "a/b", "manifest", "oslo"}, nil).Once()
		resolver.On("Resolve", mock.Anything, "oslo").Return(&types.CityRecord{Name: "Oslo"}, nil).Once()

		manifest, err := p.Run(ctx, out)
		require.NoError(t, err)
		assert.Equal(t, []string{"oslo"}, manifest.Cities)
		resolver.AssertExpectations(t)
	})

	t.Run("resolver error aborts", func(t *testing.T) {
		p, resolver := setupPrerendererTest(t)
		out := t.TempDir()
		boom := errors.New("boom")
		resolver.On("ListSlugs", mock.Anything).Return([]string{"tokyo"}, nil).Once()
		resolver.On("Resolve", mock.Anything, "tokyo").Return(nil, boom).Once()

		_, err := p.Run(ctx, out)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.NoFileExists(t, filepath.Join(out, ManifestFile))
	})

	t.Run("list error aborts", func(t *testing.T) {
		p, resolver := setupPrerendererTest(t)
		resolver.On("ListSlugs", mock.Anything).Return(nil, context.Canceled).Once()

		_, err := p.Run(ctx, t.TempDir())
		assert.ErrorIs(t, err, context.Canceled)
	})
}
