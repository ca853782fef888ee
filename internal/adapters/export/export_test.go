package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/bnema/paperswipe/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportedAt = time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)

func samplePapers() []domain.Paper {
	return []domain.Paper{
		{
			Title:    "Attention Is All You Need",
			Authors:  "Vaswani et al.",
			Abstract: "Transformers.",
			Year:     domain.IntPtr(2017),
			Tags:     []string{"nlp"},
			SavedAt:  time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		},
		{Title: "Untimed", Authors: "A", Abstract: "B"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "yaml", want: FormatYAML},
		{in: "YML", want: FormatYAML},
		{in: "json", want: FormatJSON},
		{in: "out/library.json", want: FormatJSON},
		{in: "library.yaml", want: FormatYAML},
		{in: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, NewDocument(samplePapers(), exportedAt)))

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 2, doc.Count)
	assert.Equal(t, "2026-03-03T08:00:00Z", doc.ExportedAt)
	assert.Equal(t, "2026-03-02T09:30:00Z", doc.Papers[0].SavedAt)
	assert.Empty(t, doc.Papers[1].SavedAt)
	assert.Contains(t, buf.String(), "  - title: Attention Is All You Need")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, NewDocument(samplePapers(), exportedAt)))

	assert.True(t, json.Valid(buf.Bytes()))
	assert.Contains(t, buf.String(), `"year": 2017`)
	assert.NotContains(t, buf.String(), `"venue"`)
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("xml"), Document{})
	require.ErrorIs(t, err, ErrUnknownFormat)
}
