package itinerary

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/travel-recommendation-api/internal/api"
	"github.com/FACorreiaa/travel-recommendation-api/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	RecommendItinerary(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service: service,
		logger:  logger,
	}
}

// RecommendItinerary godoc
// @Summary      Recommend Itinerary
// @Description  Returns a day-by-day itinerary and enriched attractions for a destination.
// @Tags         Recommendations
// @Accept       json
// @Produce      json
// @Param        request body types.ItineraryRequest true "Itinerary request"
// @Success      200 {object} types.ItineraryResponse "Itinerary"
// @Failure      400 {object} types.Response "Invalid Request"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /recommend/itinerary [post]
func (h *HandlerImpl) RecommendItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "RecommendItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/recommend/itinerary"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "RecommendItinerary"))

	var req types.ItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Destination == "" || req.Duration == "" {
		l.WarnContext(ctx, "Missing required fields in request")
		api.ErrorResponse(w, r, http.StatusBadRequest, "destination and duration are required")
		return
	}

	durationDays, err := strconv.Atoi(strings.TrimSpace(req.Duration))
	if err != nil || durationDays <= 0 {
		l.WarnContext(ctx, "Invalid duration", slog.String("duration", req.Duration))
		api.ErrorResponse(w, r, http.StatusBadRequest, "duration must be a positive number of days")
		return
	}

	response, err := h.service.RecommendItinerary(ctx, req, durationDays)
	if err != nil {
		l.ErrorContext(ctx, "Itinerary pipeline failed", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, response)
}
