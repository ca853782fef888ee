package cmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/paperswipe/internal/application"
	"github.com/bnema/paperswipe/internal/domain"
	"github.com/bnema/paperswipe/internal/parser"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type starterFunc func(ctx context.Context, cmd application.SearchCommand) (*application.Search, error)

func (f starterFunc) Start(ctx context.Context, cmd application.SearchCommand) (*application.Search, error) {
	return f(ctx, cmd)
}

func progressClock(elapsed time.Duration) func() time.Time {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	return func() time.Time {
		calls++
		if calls == 1 {
			return start
		}
		return start.Add(elapsed)
	}
}

func finishProgress(t *testing.T, m searchProgress) searchProgress {
	t.Helper()

	msg := m.start()
	finished, ok := msg.(searchFinishedMsg)
	require.True(t, ok)

	updated, cmd := m.Update(finished)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	progress, ok := updated.(searchProgress)
	require.True(t, ok)
	return progress
}

func TestSearchProgressCarriesSearchResult(t *testing.T) {
	var gotTopic string
	starter := starterFunc(func(_ context.Context, cmd application.SearchCommand) (*application.Search, error) {
		gotTopic = cmd.Topic
		return &application.Search{
			ID:    "search-1",
			Topic: cmd.Topic,
			Result: parser.Result{
				Papers: []domain.Paper{{Title: "A", Authors: "B", Abstract: "C"}},
				Shape:  parser.ShapeChatEnvelope,
				Path:   parser.PathFenced,
			},
		}, nil
	})

	m := newSearchProgress(context.Background(), starter, application.SearchCommand{Topic: "graphs"}, progressClock(1500*time.Millisecond))
	assert.Contains(t, m.View(), `Asking for papers on "graphs"`)

	done := finishProgress(t, m)

	assert.Equal(t, "graphs", gotTopic)
	require.NotNil(t, done.search)
	assert.Equal(t, "search-1", done.search.ID)
	assert.NoError(t, done.err)
	assert.Contains(t, done.View(), `1 papers on "graphs" (fenced)`)
	assert.Contains(t, done.View(), "1.5s")
}

func TestSearchProgressReportsPlaceholders(t *testing.T) {
	starter := starterFunc(func(_ context.Context, cmd application.SearchCommand) (*application.Search, error) {
		return &application.Search{
			Topic:  cmd.Topic,
			Result: parser.Result{Papers: parser.FallbackPapers(parser.MaxPapers), Fallback: true},
		}, nil
	})

	done := finishProgress(t, newSearchProgress(context.Background(), starter, application.SearchCommand{Topic: "graphs"}, nil))

	assert.Contains(t, done.View(), `No usable papers on "graphs", showing 5 placeholders`)
}

func TestSearchProgressKeepsErrorAndClearsFrame(t *testing.T) {
	wantErr := errors.New("upstream down")
	starter := starterFunc(func(context.Context, application.SearchCommand) (*application.Search, error) {
		return nil, wantErr
	})

	done := finishProgress(t, newSearchProgress(context.Background(), starter, application.SearchCommand{Topic: "graphs"}, nil))

	assert.ErrorIs(t, done.err, wantErr)
	assert.Nil(t, done.search)
	assert.Empty(t, done.View())

	_, cmd := done.Update(spinner.TickMsg{})
	assert.Nil(t, cmd)
}
