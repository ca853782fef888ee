package library

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/paperswipe/internal/application"
	"github.com/bnema/paperswipe/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLibrary(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render(application.LibraryView{
		Papers: []domain.Paper{
			{
				Title:    "Attention Is All You Need",
				Authors:  "Vaswani et al.",
				Abstract: "The dominant sequence transduction models...",
				Year:     domain.IntPtr(2017),
				Venue:    "NeurIPS",
				Tags:     []string{"transformers", "nlp"},
				SavedAt:  now.Add(-5 * time.Minute),
			},
			{
				Title:    "Deep Residual Learning",
				Authors:  "He et al.",
				Abstract: "Deeper neural networks are more difficult to train.",
				SavedAt:  now.Add(-10 * 24 * time.Hour),
			},
		},
		Stats: domain.LibraryStats{Total: 3, Today: 1},
	}, RenderOptions{Now: now, Query: domain.LibraryQuery{Search: "learning", Sort: domain.SortNewest}})

	require.NoError(t, err)
	assert.Contains(t, output, "Saved Papers")
	assert.Contains(t, output, "total: 3")
	assert.Contains(t, output, "today: 1")
	assert.Contains(t, output, "shown: 2")
	assert.Contains(t, output, `filter: "learning"`)
	assert.Contains(t, output, "1. Attention Is All You Need")
	assert.Contains(t, output, "Vaswani et al. · 2017 · NeurIPS")
	assert.Contains(t, output, "#transformers #nlp")
	assert.Contains(t, output, "saved 5 minutes ago")
	assert.Contains(t, output, "2. Deep Residual Learning")
	assert.Contains(t, output, "saved 04 Feb 2026 11:00")
}

func TestRenderEmptyLibrary(t *testing.T) {
	output, err := Render(application.LibraryView{}, RenderOptions{Now: time.Now()})

	require.NoError(t, err)
	assert.Contains(t, output, "total: 0")
	assert.Contains(t, output, "Your library is empty.")
}

func TestRenderNoMatches(t *testing.T) {
	output, err := Render(application.LibraryView{Stats: domain.LibraryStats{Total: 4}}, RenderOptions{Now: time.Now()})

	require.NoError(t, err)
	assert.Contains(t, output, "No saved papers match the filter.")
	assert.NotContains(t, output, "Your library is empty.")
}

func TestTruncateAbstract(t *testing.T) {
	long := strings.Repeat("word ", 100)

	assert.Equal(t, "short text", truncate("  short \n text ", 50))
	assert.Equal(t, "word word...", truncate(long, 10))
	assert.Equal(t, strings.TrimSpace(long), truncate(long, -1))
}
