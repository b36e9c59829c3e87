package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/FACorreiaa/green-city-pages/internal/api/city"
)

// Config contains dependencies needed for the router setup
type Config struct {
	CityHandler    *city.Handler
	MetricsHandler http.Handler
	AllowedOrigins []string
}

// SetupRouter initializes and configures the application routes.
// Server-wide middleware (logger, requestID, recoverer) is applied by the
// caller before mounting this router.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/cities", cfg.CityHandler.ListCities)
		r.Get("/cities/{city}", cfg.CityHandler.GetCity)
	})

	return r
}
