package city

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/green-city-pages/internal/api"
	"github.com/FACorreiaa/green-city-pages/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewCityHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// ListCities handles GET /cities - returns the static params for every city page
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "ListCities")
	defer span.End()

	l := h.logger.With(slog.String("method", "ListCities"))

	slugs, err := h.service.ListSlugs(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list cities", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list cities")
		return
	}

	resp := types.CityParamsResponse{Cities: make([]types.CityParam, 0, len(slugs))}
	for _, slug := range slugs {
		resp.Cities = append(resp.Cities, types.CityParam{City: slug})
	}

	api.WriteJSONResponse(w, r, http.StatusOK, resp)
	span.SetStatus(codes.Ok, "Cities listed")
}

// GetCity handles GET /cities/{city} - returns the normalized record for one city
func (h *Handler) GetCity(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "city")

	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetCity")
	defer span.End()
	span.SetAttributes(attribute.String("city.slug", slug))

	l := h.logger.With(slog.String("method", "GetCity"), slog.String("slug", slug))

	city, err := h.service.Resolve(ctx, slug)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			l.InfoContext(ctx, "City not found")
			span.SetStatus(codes.Error, "City not found")
			api.ErrorResponse(w, r, http.StatusNotFound, "city not found")
			return
		}
		l.ErrorContext(ctx, "Failed to resolve city", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to resolve city")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, city)
	span.SetStatus(codes.Ok, "City returned")
}
