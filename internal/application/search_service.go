package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/paperswipe/internal/domain"
	"github.com/bnema/paperswipe/internal/observability"
	"github.com/bnema/paperswipe/internal/parser"
	"github.com/bnema/paperswipe/internal/ports"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type SearchService struct {
	recommender ports.Recommender
	parser      *parser.Parser
	clock       ports.Clock
	metrics     *observability.Metrics
	logger      zerolog.Logger
	newID       func() string
}

type SearchOption func(*SearchService)

func WithSearchMetrics(metrics *observability.Metrics) SearchOption {
	return func(s *SearchService) {
		s.metrics = metrics
	}
}

func WithSearchLogger(logger zerolog.Logger) SearchOption {
	return func(s *SearchService) {
		s.logger = logger
	}
}

func WithSearchIDs(newID func() string) SearchOption {
	return func(s *SearchService) {
		s.newID = newID
	}
}

func NewSearchService(recommender ports.Recommender, p *parser.Parser, clock ports.Clock, opts ...SearchOption) *SearchService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if p == nil {
		p = parser.New()
	}

	s := &SearchService{
		recommender: recommender,
		parser:      p,
		clock:       clock,
		logger:      zerolog.Nop(),
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Recommend fetches and parses papers for a topic. Only an empty topic or a
// transport failure is an error; an unusable response yields placeholder
// papers with Result.Fallback set.
func (s *SearchService) Recommend(ctx context.Context, cmd SearchCommand) (Search, error) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		s.countSearch("invalid_topic")
		return Search{}, domain.ErrEmptyTopic
	}

	search := Search{ID: s.newID(), Topic: topic}
	logger := observability.WithSearchContext(s.logger, search.ID, topic)

	started := s.clock.Now()
	body, err := s.recommender.Recommend(ctx, topic)
	s.observeDuration(s.clock.Now().Sub(started))
	if err != nil {
		s.countSearch("transport_error")
		logger.Error().Err(err).Msg("recommendation request failed")
		if errors.Is(err, domain.ErrTransport) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Search{}, fmt.Errorf("recommend papers: %w", err)
		}
		return Search{}, fmt.Errorf("recommend papers: %w: %w", domain.ErrTransport, err)
	}

	search.Result = s.parser.Parse(body)
	s.recordParse(search.Result)
	if search.Result.Fallback {
		s.countSearch("fallback")
	} else {
		s.countSearch("ok")
	}

	logger.Info().
		Stringer("shape", search.Result.Shape).
		Str("path", string(search.Result.Path)).
		Int("papers", len(search.Result.Papers)).
		Int("dropped", search.Result.Dropped).
		Bool("fallback", search.Result.Fallback).
		Msg("recommendation parsed")

	return search, nil
}

// Start runs Recommend and opens a swipe session over the papers.
func (s *SearchService) Start(ctx context.Context, cmd SearchCommand) (*Search, error) {
	search, err := s.Recommend(ctx, cmd)
	if err != nil {
		return nil, err
	}

	search.Session = domain.NewSwipeSession(search.Result.Papers, s.clock.Now)
	return &search, nil
}

// ParseResponse runs the parser over a stored response body.
func (s *SearchService) ParseResponse(body []byte) parser.Result {
	result := s.parser.Parse(body)
	s.recordParse(result)
	return result
}

func (s *SearchService) recordParse(result parser.Result) {
	if s.metrics == nil {
		return
	}

	s.metrics.ParseShapes.WithLabelValues(result.Shape.String()).Inc()
	s.metrics.PapersDropped.Add(float64(result.Dropped))
	if result.Fallback {
		s.metrics.ParseFallbacks.Inc()
	}
}

func (s *SearchService) countSearch(result string) {
	if s.metrics != nil {
		s.metrics.Searches.WithLabelValues(result).Inc()
	}
}

func (s *SearchService) observeDuration(elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.RecommendDuration.Observe(elapsed.Seconds())
	}
}
