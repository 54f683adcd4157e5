package destinations

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/travel-recommendation-api/internal/api"
	"github.com/FACorreiaa/travel-recommendation-api/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	RecommendDestinations(w http.ResponseWriter, r *http.Request)
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

// RecommendDestinations godoc
// @Summary      Recommend Destinations
// @Description  Returns up to three destination recommendations for the given travel preferences.
// @Tags         Recommendations
// @Accept       json
// @Produce      json
// @Param        preferences body types.TravelPreferences true "Travel preferences"
// @Success      200 {object} types.RecommendationsResponse "Recommendations"
// @Failure      400 {object} types.Response "Invalid Request"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /recommend/destinations [post]
func (h *HandlerImpl) RecommendDestinations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationHandler").Start(r.Context(), "RecommendDestinations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/recommend/destinations"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "RecommendDestinations"))

	var prefs types.TravelPreferences
	if err := api.DecodeJSONBody(w, r, &prefs); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if prefs.Preferences == "" || prefs.Duration == "" || prefs.Budget == "" {
		l.WarnContext(ctx, "Missing required fields in request")
		api.ErrorResponse(w, r, http.StatusBadRequest, "preferences, duration and budget are required")
		return
	}

	response, err := h.service.RecommendDestinations(ctx, prefs)
	if err != nil {
		l.ErrorContext(ctx, "Destination pipeline failed", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, response)
}
