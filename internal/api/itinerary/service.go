package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

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

// SearchClient serves both the general and the restaurant research fetch.
type SearchClient interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// ImageResolver fills the derived imageUrl field on attractions.
type ImageResolver interface {
	ResolveImage(ctx context.Context, subject, hint string) string
}

var _ Service = (*ServiceImpl)(nil)

// Service runs the itinerary pipeline: parallel research, generation
// against a strict N-day schema, then attraction enrichment.
type Service interface {
	RecommendItinerary(ctx context.Context, req types.ItineraryRequest, durationDays int) (*types.ItineraryResponse, error)
}

type ServiceImpl struct {
	aiClient AIClient
	searcher SearchClient
	images   ImageResolver
	logger   *slog.Logger
}

func NewServiceImpl(aiClient AIClient, searcher SearchClient, images ImageResolver, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		aiClient: aiClient,
		searcher: searcher,
		images:   images,
		logger:   logger,
	}
}

// RecommendItinerary executes the fixed Research -> Generate -> Enrich
// sequence. Generation failure yields empty itinerary and attraction
// lists, never an error to the handler.
func (s *ServiceImpl) RecommendItinerary(ctx context.Context, req types.ItineraryRequest, durationDays int) (*types.ItineraryResponse, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "RecommendItinerary", trace.WithAttributes(
		attribute.String("itinerary.destination", req.Destination),
		attribute.Int("itinerary.duration_days", durationDays),
	))
	defer span.End()

	l := s.logger.With(slog.String("service", "RecommendItinerary"))

	researchSummary := s.research(ctx, req)
	days, attractions := s.generate(ctx, req, durationDays, researchSummary)
	s.enrich(ctx, req.Destination, attractions)

	// The wire contract promises arrays, never null.
	if days == nil {
		days = []types.ItineraryDay{}
	}
	if attractions == nil {
		attractions = []types.Attraction{}
	}

	span.SetAttributes(attribute.Int("itinerary.days", len(days)))
	span.SetStatus(codes.Ok, "Itinerary generated")
	l.InfoContext(ctx, "Itinerary pipeline completed",
		slog.Int("days", len(days)), slog.Int("attractions", len(attractions)))

	return &types.ItineraryResponse{
		Itinerary:   days,
		Attractions: attractions,
	}, nil
}

// research runs the general and restaurant fetches concurrently and joins
// both before merging, general info first. Each fetch degrades to its
// fixed no-data line independently.
func (s *ServiceImpl) research(ctx context.Context, req types.ItineraryRequest) types.ResearchSummary {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "research")
	defer span.End()

	var generalBlock, restaurantBlock string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		generalBlock = s.fetchGeneral(gctx, req)
		return nil
	})
	g.Go(func() error {
		restaurantBlock = s.fetchRestaurants(gctx, req)
		return nil
	})
	// Both fetches absorb their own failures.
	_ = g.Wait()

	summary := fmt.Sprintf("[여행 정보]\n%s\n\n[맛집 정보]\n%s", generalBlock, restaurantBlock)
	span.SetAttributes(attribute.Int("research.length", len(summary)))
	return types.ResearchSummary(summary)
}

func (s *ServiceImpl) fetchGeneral(ctx context.Context, req types.ItineraryRequest) string {
	results, err := s.searcher.Search(ctx, generalResearchQuery(req))
	if err != nil {
		s.logger.WarnContext(ctx, "General itinerary research failed",
			slog.String("destination", req.Destination), slog.Any("error", err))
		metrics.Get().ProviderFailuresTotal.Add(ctx, 1)
		return noGeneralData
	}
	if len(results) == 0 {
		return noGeneralData
	}
	return search.FormatResults(results)
}

// fetchRestaurants tries the dedicated restaurant query, then the generic
// fallback query, before settling on the fixed no-data line. The two-tier
// chain is deliberate; meal-suggestion quality depends on it.
func (s *ServiceImpl) fetchRestaurants(ctx context.Context, req types.ItineraryRequest) string {
	results, err := s.searcher.Search(ctx, restaurantResearchQuery(req))
	if err != nil || len(results) == 0 {
		if err != nil {
			s.logger.WarnContext(ctx, "Restaurant research failed, trying fallback query",
				slog.String("destination", req.Destination), slog.Any("error", err))
			metrics.Get().ProviderFailuresTotal.Add(ctx, 1)
		}
		results, err = s.searcher.Search(ctx, restaurantFallbackQuery(req))
		if err != nil || len(results) == 0 {
			if err != nil {
				s.logger.WarnContext(ctx, "Restaurant fallback query failed",
					slog.String("destination", req.Destination), slog.Any("error", err))
				metrics.Get().ProviderFailuresTotal.Add(ctx, 1)
			}
			return noRestaurantData
		}
	}
	return search.FormatResults(results)
}

// generatedAttraction is the strict wire shape for attractions; imageUrl
// is derived later.
type generatedAttraction struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *ServiceImpl) generate(ctx context.Context, req types.ItineraryRequest,
	durationDays int, research types.ResearchSummary) ([]types.ItineraryDay, []types.Attraction) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "generate")
	defer span.End()

	startTime := time.Now()
	prompt := itineraryPrompt(req, durationDays, research)

	response, err := s.aiClient.GenerateContent(ctx, prompt)
	metrics.Get().GenerationDurationSeconds.Record(ctx, time.Since(startTime).Seconds())
	if err != nil {
		return s.generationFailed(ctx, span, fmt.Errorf("failed to generate itinerary: %w", err))
	}

	days, attractions, err := parseItinerary(response, durationDays)
	if err != nil {
		return s.generationFailed(ctx, span, err)
	}

	span.SetStatus(codes.Ok, "Itinerary parsed")
	return days, attractions
}

// generationFailed implements the fail-empty policy: both output
// collections come back empty, the handler still answers 200.
func (s *ServiceImpl) generationFailed(ctx context.Context, span trace.Span, err error) ([]types.ItineraryDay, []types.Attraction) {
	span.RecordError(err)
	span.SetStatus(codes.Error, "Generation failed")
	s.logger.ErrorContext(ctx, "Itinerary generation failed, returning empty result",
		slog.Any("error", err))
	metrics.Get().GenerationFailuresTotal.Add(ctx, 1)
	return nil, nil
}

// parseItinerary validates the raw model output against the strict schema:
// known fields only, exactly durationDays day entries numbered 1..N.
func parseItinerary(raw string, durationDays int) ([]types.ItineraryDay, []types.Attraction, error) {
	clean := generativeAI.CleanJSONResponse(raw)

	var parsed struct {
		Itinerary   []types.ItineraryDay  `json:"itinerary"`
		Attractions []generatedAttraction `json:"attractions"`
	}
	dec := json.NewDecoder(strings.NewReader(clean))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&parsed); err != nil {
		return nil, nil, fmt.Errorf("failed to parse itinerary JSON: %w", err)
	}

	if len(parsed.Itinerary) != durationDays {
		return nil, nil, fmt.Errorf("expected %d day entries, got %d", durationDays, len(parsed.Itinerary))
	}
	for i, day := range parsed.Itinerary {
		if day.Day != i+1 {
			return nil, nil, fmt.Errorf("day entry %d is numbered %d", i+1, day.Day)
		}
		if len(day.Activities) == 0 {
			return nil, nil, fmt.Errorf("day %d has no activities", day.Day)
		}
	}

	attractions := make([]types.Attraction, 0, len(parsed.Attractions))
	for _, a := range parsed.Attractions {
		if a.Name == "" {
			return nil, nil, fmt.Errorf("attraction with empty name")
		}
		attractions = append(attractions, types.Attraction{
			Name:        a.Name,
			Description: a.Description,
		})
	}
	return parsed.Itinerary, attractions, nil
}

// enrich fills attraction images concurrently; the destination is passed
// as search context so lookups stay on topic.
func (s *ServiceImpl) enrich(ctx context.Context, destination string, attractions []types.Attraction) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "enrich")
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	for i := range attractions {
		g.Go(func() error {
			attraction := &attractions[i]
			attraction.ImageURL = s.images.ResolveImage(gctx, attraction.Name, destination)
			return nil
		})
	}
	// Resolver is a total function; the group never returns an error.
	_ = g.Wait()
}
