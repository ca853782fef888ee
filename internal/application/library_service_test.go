package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/paperswipe/internal/domain"
	"github.com/bnema/paperswipe/internal/observability"
	"github.com/bnema/paperswipe/internal/ports/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLibraryServiceRecordSavesAcceptedOnly(t *testing.T) {
	store := mocks.NewMockLibraryStore(t)
	metrics := observability.NewMetrics()
	service := NewLibraryService(store, nil, WithLibraryMetrics(metrics))

	paper := domain.Paper{Title: "kept", Authors: "A", Abstract: "B", SavedAt: testNow}
	store.EXPECT().Add(mockAnyContext(), paper).Return(true, nil).Once()

	require.NoError(t, service.Record(context.Background(), domain.Outcome{Kind: domain.OutcomeAccepted, Paper: paper}))
	require.NoError(t, service.Record(context.Background(), domain.Outcome{Kind: domain.OutcomeRejected, Paper: paper}))
	require.NoError(t, service.Record(context.Background(), domain.Outcome{Kind: domain.OutcomeReset}))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PapersSaved))
}

func TestLibraryServiceRecordWrapsStoreError(t *testing.T) {
	store := mocks.NewMockLibraryStore(t)
	service := NewLibraryService(store, nil)

	storeErr := errors.New("disk full")
	store.EXPECT().Add(mockAnyContext(), mock.Anything).Return(false, storeErr)

	err := service.Record(context.Background(), domain.Outcome{Kind: domain.OutcomeAccepted, Paper: domain.Paper{Title: "x"}})
	require.ErrorIs(t, err, storeErr)
	assert.Contains(t, err.Error(), "save accepted paper")
}

func TestLibraryServiceSaveSelectionStampsAndSkipsInvalid(t *testing.T) {
	store := mocks.NewMockLibraryStore(t)
	clock := mocks.NewMockClock(t)
	service := NewLibraryService(store, clock)

	earlier := testNow.Add(-time.Hour)
	clock.EXPECT().Now().Return(testNow)
	store.EXPECT().Add(mockAnyContext(), domain.Paper{Title: "new", Authors: "A", Abstract: "B", SavedAt: testNow}).Return(true, nil)
	store.EXPECT().Add(mockAnyContext(), domain.Paper{Title: "old", Authors: "A", Abstract: "B", SavedAt: earlier}).Return(true, nil)

	result, err := service.SaveSelection(context.Background(), SaveSelectionCommand{Papers: []domain.Paper{
		{Title: "new", Authors: "A", Abstract: "B"},
		{Title: "invalid", Authors: "A"},
		{Title: "old", Authors: "A", Abstract: "B", SavedAt: earlier},
	}})

	require.NoError(t, err)
	assert.Equal(t, SaveSelectionResult{Received: 3, Saved: 2}, result)
}

func TestLibraryServiceCountsOnlyNewlyStoredPapers(t *testing.T) {
	store := mocks.NewMockLibraryStore(t)
	clock := mocks.NewMockClock(t)
	metrics := observability.NewMetrics()
	service := NewLibraryService(store, clock, WithLibraryMetrics(metrics))

	paper := domain.Paper{Title: "again", Authors: "A", Abstract: "B", SavedAt: testNow}
	clock.EXPECT().Now().Return(testNow)
	store.EXPECT().Add(mockAnyContext(), paper).Return(true, nil).Once()
	store.EXPECT().Add(mockAnyContext(), paper).Return(false, nil)

	require.NoError(t, service.Record(context.Background(), domain.Outcome{Kind: domain.OutcomeAccepted, Paper: paper}))
	require.NoError(t, service.Record(context.Background(), domain.Outcome{Kind: domain.OutcomeAccepted, Paper: paper}))

	result, err := service.SaveSelection(context.Background(), SaveSelectionCommand{Papers: []domain.Paper{paper, paper}})
	require.NoError(t, err)

	assert.Equal(t, SaveSelectionResult{Received: 2, Saved: 0, Duplicates: 2}, result)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PapersSaved))
}

func TestLibraryServiceListAppliesQueryAndStats(t *testing.T) {
	store := mocks.NewMockLibraryStore(t)
	clock := mocks.NewMockClock(t)
	service := NewLibraryService(store, clock)

	clock.EXPECT().Now().Return(testNow)
	store.EXPECT().List(mockAnyContext()).Return([]domain.Paper{
		{Title: "Graph nets", SavedAt: testNow.Add(-time.Minute)},
		{Title: "Transformers", SavedAt: testNow.Add(-72 * time.Hour)},
	}, nil)

	view, err := service.List(context.Background(), domain.LibraryQuery{Search: "graph"})
	require.NoError(t, err)
	require.Len(t, view.Papers, 1)
	assert.Equal(t, "Graph nets", view.Papers[0].Title)
	assert.Equal(t, domain.LibraryStats{Total: 2, Today: 1}, view.Stats)
}

func TestLibraryServiceRemoveAndClear(t *testing.T) {
	store := mocks.NewMockLibraryStore(t)
	service := NewLibraryService(store, nil)

	store.EXPECT().Remove(mockAnyContext(), "missing").Return(domain.ErrPaperNotFound)
	store.EXPECT().Remove(mockAnyContext(), "present").Return(nil)
	store.EXPECT().Clear(mockAnyContext()).Return(nil)

	err := service.Remove(context.Background(), RemovePaperCommand{Title: "missing"})
	require.ErrorIs(t, err, domain.ErrPaperNotFound)
	assert.Contains(t, err.Error(), `"missing"`)

	require.NoError(t, service.Remove(context.Background(), RemovePaperCommand{Title: "present"}))
	require.NoError(t, service.Clear(context.Background()))
}

func TestLibraryServiceRemoveMatching(t *testing.T) {
	store := mocks.NewMockLibraryStore(t)
	service := NewLibraryService(store, nil)

	store.EXPECT().List(mockAnyContext()).Return([]domain.Paper{
		{Title: "Deep Residual Learning"},
		{Title: "Attention Is All You Need"},
		{Title: "Deep Sets"},
	}, nil)
	store.EXPECT().Remove(mockAnyContext(), "Deep Residual Learning").Return(nil)
	store.EXPECT().Remove(mockAnyContext(), "Deep Sets").Return(domain.ErrPaperNotFound)

	removed, err := service.RemoveMatching(context.Background(), RemoveMatchingCommand{Pattern: "Deep*"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func TestLibraryServiceRemoveMatchingRejectsBadPattern(t *testing.T) {
	store := mocks.NewMockLibraryStore(t)
	service := NewLibraryService(store, nil)

	_, err := service.RemoveMatching(context.Background(), RemoveMatchingCommand{Pattern: "[unterminated"})
	require.ErrorIs(t, err, ErrInvalidPattern)
}
