package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/paperswipe/internal/domain"
	"github.com/bnema/paperswipe/internal/observability"
	"github.com/bnema/paperswipe/internal/ports"
	"github.com/gobwas/glob"
	"github.com/rs/zerolog"
)

var ErrInvalidPattern = errors.New("invalid title pattern")

type LibraryService struct {
	store   ports.LibraryStore
	clock   ports.Clock
	metrics *observability.Metrics
	logger  zerolog.Logger
}

type LibraryOption func(*LibraryService)

func WithLibraryMetrics(metrics *observability.Metrics) LibraryOption {
	return func(s *LibraryService) {
		s.metrics = metrics
	}
}

func WithLibraryLogger(logger zerolog.Logger) LibraryOption {
	return func(s *LibraryService) {
		s.logger = logger
	}
}

func NewLibraryService(store ports.LibraryStore, clock ports.Clock, opts ...LibraryOption) *LibraryService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	s := &LibraryService{
		store:  store,
		clock:  clock,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Record persists the paper of an accepted swipe outcome. Other outcomes
// are ignored.
func (s *LibraryService) Record(ctx context.Context, outcome domain.Outcome) error {
	if outcome.Kind != domain.OutcomeAccepted {
		return nil
	}

	added, err := s.store.Add(ctx, outcome.Paper)
	if err != nil {
		return fmt.Errorf("save accepted paper: %w", err)
	}
	if !added {
		s.logger.Debug().Str("title", outcome.Paper.Title).Msg("paper already in library")
		return nil
	}
	s.countSaved(1)

	return nil
}

// SaveSelection stores each valid paper, stamping the save time on papers
// that have none. Invalid papers are skipped; titles already in the library
// count as duplicates.
func (s *LibraryService) SaveSelection(ctx context.Context, cmd SaveSelectionCommand) (SaveSelectionResult, error) {
	result := SaveSelectionResult{Received: len(cmd.Papers)}
	now := s.clock.Now()

	for _, paper := range cmd.Papers {
		if !paper.Valid() {
			s.logger.Debug().Str("title", paper.Title).Msg("skipping invalid paper in selection")
			continue
		}
		if paper.SavedAt.IsZero() {
			paper = paper.WithSavedAt(now)
		}

		added, err := s.store.Add(ctx, paper)
		if err != nil {
			return result, fmt.Errorf("save selected paper %q: %w", paper.Title, err)
		}
		if added {
			result.Saved++
		} else {
			result.Duplicates++
		}
	}
	s.countSaved(result.Saved)

	return result, nil
}

func (s *LibraryService) List(ctx context.Context, query domain.LibraryQuery) (LibraryView, error) {
	papers, err := s.store.List(ctx)
	if err != nil {
		return LibraryView{}, fmt.Errorf("list library: %w", err)
	}

	return LibraryView{
		Papers: query.Apply(papers),
		Stats:  domain.ComputeLibraryStats(papers, s.clock.Now()),
	}, nil
}

func (s *LibraryService) Remove(ctx context.Context, cmd RemovePaperCommand) error {
	if err := s.store.Remove(ctx, cmd.Title); err != nil {
		if errors.Is(err, domain.ErrPaperNotFound) {
			return fmt.Errorf("remove %q: %w", cmd.Title, err)
		}
		return fmt.Errorf("remove paper: %w", err)
	}
	return nil
}

// RemoveMatching deletes every paper whose title matches the pattern and
// returns how many were removed.
func (s *LibraryService) RemoveMatching(ctx context.Context, cmd RemoveMatchingCommand) (int, error) {
	matcher, err := glob.Compile(cmd.Pattern)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidPattern, cmd.Pattern, err)
	}

	papers, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list library: %w", err)
	}

	removed := 0
	for _, paper := range papers {
		if !matcher.Match(paper.Title) {
			continue
		}
		if err := s.store.Remove(ctx, paper.Title); err != nil {
			if errors.Is(err, domain.ErrPaperNotFound) {
				continue
			}
			return removed, fmt.Errorf("remove %q: %w", paper.Title, err)
		}
		removed++
	}

	s.logger.Debug().Str("pattern", cmd.Pattern).Int("removed", removed).Msg("removed matching papers")
	return removed, nil
}

func (s *LibraryService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear library: %w", err)
	}
	return nil
}

func (s *LibraryService) countSaved(n int) {
	if s.metrics != nil && n > 0 {
		s.metrics.PapersSaved.Add(float64(n))
	}
}
