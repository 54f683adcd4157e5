package destinations

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/travel-recommendation-api/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/travel-recommendation-api/internal/api/generative_ai"
	"github.com/FACorreiaa/travel-recommendation-api/internal/api/search"
	"github.com/FACorreiaa/travel-recommendation-api/internal/types"
)

// AIClient is the generation dependency of the pipeline.
type AIClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// SearchClient is the research dependency of the pipeline.
type SearchClient interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// ImageResolver fills the derived imageUrl field.
type ImageResolver interface {
	ResolveImage(ctx context.Context, subject, hint string) string
}

// WeatherResolver fills the derived weather field.
type WeatherResolver interface {
	ResolveWeather(ctx context.Context, place string) string
}

var _ Service = (*ServiceImpl)(nil)

// Service runs the destination pipeline: research, generation against a
// strict schema, then per-item enrichment.
type Service interface {
	RecommendDestinations(ctx context.Context, prefs types.TravelPreferences) (*types.RecommendationsResponse, error)
}

type ServiceImpl struct {
	aiClient AIClient
	searcher SearchClient
	images   ImageResolver
	weather  WeatherResolver
	logger   *slog.Logger
}

func NewServiceImpl(aiClient AIClient, searcher SearchClient, images ImageResolver,
	weather WeatherResolver, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		aiClient: aiClient,
		searcher: searcher,
		images:   images,
		weather:  weather,
		logger:   logger,
	}
}

// RecommendDestinations executes the fixed Research -> Generate -> Enrich
// sequence. Generation failure yields an empty recommendation list, never
// an error to the handler.
func (s *ServiceImpl) RecommendDestinations(ctx context.Context, prefs types.TravelPreferences) (*types.RecommendationsResponse, error) {
	ctx, span := otel.Tracer("DestinationService").Start(ctx, "RecommendDestinations")
	defer span.End()

	l := s.logger.With(slog.String("service", "RecommendDestinations"))

	durationDays, err := strconv.Atoi(strings.TrimSpace(prefs.Duration))
	if err != nil {
		durationDays = 0
	}

	researchSummary := s.research(ctx, prefs)
	recommendations := s.generate(ctx, prefs, researchSummary, durationDays)
	s.enrich(ctx, recommendations)

	// The wire contract promises an array, never null.
	if recommendations == nil {
		recommendations = []types.DestinationRecommendation{}
	}

	metrics.Get().RecommendationsTotal.Add(ctx, int64(len(recommendations)))
	span.SetAttributes(attribute.Int("recommendations.count", len(recommendations)))
	span.SetStatus(codes.Ok, "Recommendations generated")
	l.InfoContext(ctx, "Destination pipeline completed", slog.Int("count", len(recommendations)))

	return &types.RecommendationsResponse{Recommendations: recommendations}, nil
}

// research gathers supporting facts for the prompt. Any provider failure
// degrades to the fixed no-data line.
func (s *ServiceImpl) research(ctx context.Context, prefs types.TravelPreferences) types.ResearchSummary {
	ctx, span := otel.Tracer("DestinationService").Start(ctx, "research")
	defer span.End()

	query := researchQuery(prefs)
	span.SetAttributes(attribute.String("search.query", query))

	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		s.logger.WarnContext(ctx, "Destination research failed, continuing without web data",
			slog.String("query", query), slog.Any("error", err))
		metrics.Get().ProviderFailuresTotal.Add(ctx, 1)
		span.RecordError(err)
		return noResearchData
	}
	if len(results) == 0 {
		return noResearchData
	}
	return types.ResearchSummary(search.FormatResults(results))
}

// generatedRecommendation is the strict wire shape the model must produce;
// derived fields are added later by enrichment.
type generatedRecommendation struct {
	Destination             string `json:"destination"`
	Country                 string `json:"country"`
	ShortDescription        string `json:"shortDescription"`
	ReasonForRecommendation string `json:"reasonForRecommendation"`
	EstimatedTotalCost      string `json:"estimatedTotalCost"`
	FlightSuggestion        string `json:"flightSuggestion"`
	HotelSuggestion         string `json:"hotelSuggestion"`
}

func (s *ServiceImpl) generate(ctx context.Context, prefs types.TravelPreferences,
	research types.ResearchSummary, durationDays int) []types.DestinationRecommendation {
	ctx, span := otel.Tracer("DestinationService").Start(ctx, "generate")
	defer span.End()

	startTime := time.Now()
	prompt := recommendationsPrompt(prefs, research, durationDays)

	response, err := s.aiClient.GenerateContent(ctx, prompt)
	metrics.Get().GenerationDurationSeconds.Record(ctx, time.Since(startTime).Seconds())
	if err != nil {
		return s.generationFailed(ctx, span, fmt.Errorf("failed to generate recommendations: %w", err))
	}

	parsed, err := parseRecommendations(response)
	if err != nil {
		return s.generationFailed(ctx, span, err)
	}

	recommendations := make([]types.DestinationRecommendation, 0, len(parsed))
	for _, rec := range parsed {
		recommendations = append(recommendations, types.DestinationRecommendation{
			ID:                      uuid.New().String(),
			Destination:             rec.Destination,
			Country:                 rec.Country,
			ShortDescription:        rec.ShortDescription,
			ReasonForRecommendation: rec.ReasonForRecommendation,
			EstimatedTotalCost:      rec.EstimatedTotalCost,
			FlightSuggestion:        rec.FlightSuggestion,
			HotelSuggestion:         rec.HotelSuggestion,
		})
	}
	span.SetStatus(codes.Ok, "Recommendations parsed")
	return recommendations
}

// generationFailed implements the fail-empty policy for the generation
// stage: log, count, return no items.
func (s *ServiceImpl) generationFailed(ctx context.Context, span trace.Span, err error) []types.DestinationRecommendation {
	span.RecordError(err)
	span.SetStatus(codes.Error, "Generation failed")
	s.logger.ErrorContext(ctx, "Destination generation failed, returning empty result",
		slog.Any("error", err))
	metrics.Get().GenerationFailuresTotal.Add(ctx, 1)
	return nil
}

// parseRecommendations validates the raw model output against the strict
// schema: known fields only, at most 3 items, no blank destinations.
func parseRecommendations(raw string) ([]generatedRecommendation, error) {
	clean := generativeAI.CleanJSONResponse(raw)

	var parsed struct {
		Recommendations []generatedRecommendation `json:"recommendations"`
	}
	dec := json.NewDecoder(strings.NewReader(clean))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations JSON: %w", err)
	}

	if len(parsed.Recommendations) > 3 {
		parsed.Recommendations = parsed.Recommendations[:3]
	}
	for _, rec := range parsed.Recommendations {
		if rec.Destination == "" || rec.Country == "" {
			return nil, fmt.Errorf("recommendation missing required destination or country")
		}
	}
	return parsed.Recommendations, nil
}

// enrich fills derived fields in place. Items are independent, so the
// lookups run concurrently; output order is the input order.
func (s *ServiceImpl) enrich(ctx context.Context, recommendations []types.DestinationRecommendation) {
	ctx, span := otel.Tracer("DestinationService").Start(ctx, "enrich")
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	for i := range recommendations {
		g.Go(func() error {
			rec := &recommendations[i]
			rec.ImageURL = s.images.ResolveImage(gctx, rec.Destination, rec.Country)
			rec.Weather = s.weather.ResolveWeather(gctx, rec.Destination)
			return nil
		})
	}
	// Resolvers are total functions; the group never returns an error.
	_ = g.Wait()
}
