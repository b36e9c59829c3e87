package container

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	appLogger "github.com/FACorreiaa/green-city-pages/app/logger"
	"github.com/FACorreiaa/green-city-pages/app/observability/metrics"
	"github.com/FACorreiaa/green-city-pages/app/tracer"
	"github.com/FACorreiaa/green-city-pages/config"
	"github.com/FACorreiaa/green-city-pages/internal/api/city"
	"github.com/FACorreiaa/green-city-pages/internal/prerender"
	"github.com/FACorreiaa/green-city-pages/internal/router"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *slog.Logger
	CityService *city.ServiceImpl
	CityHandler *city.Handler
	Prerenderer *prerender.Prerenderer
}

// NewContainer wires the dataset path and overrides from cfg into the city
// service and everything built on top of it.
func NewContainer(cfg *config.Config, logger *slog.Logger) *Container {
	metrics.InitAppMetrics()
	appMetrics := metrics.Get()

	cityRepo := city.NewCityRepository(cfg.Dataset.Path, logger)
	cityService := city.NewCityService(cityRepo, cfg.Dataset.Overrides, appMetrics, logger)
	cityHandler := city.NewCityHandler(cityService, logger)

	prerenderer := prerender.NewPrerenderer(cityService, cfg.Export.Concurrency, appMetrics, logger)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		CityService: cityService,
		CityHandler: cityHandler,
		Prerenderer: prerenderer,
	}
}

// Handler builds the full HTTP handler: server-wide middleware plus the
// application routes.
func (c *Container) Handler() http.Handler {
	timeout := c.Config.Server.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	mainRouter := router.SetupRouter(&router.Config{
		CityHandler:    c.CityHandler,
		MetricsHandler: tracer.MetricsHandler(),
		AllowedOrigins: c.Config.Server.AllowedOrigins,
	})

	r := chi.NewMux()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(c.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5, "application/json"))
	r.Mount("/", mainRouter)
	return r
}
