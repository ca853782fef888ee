// Package export writes the library as YAML or JSON documents.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/bnema/paperswipe/internal/domain"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Entry is the exported form of a saved paper.
type Entry struct {
	Title    string   `json:"title" yaml:"title"`
	Authors  string   `json:"authors" yaml:"authors"`
	Abstract string   `json:"abstract" yaml:"abstract"`
	Year     *int     `json:"year,omitempty" yaml:"year,omitempty"`
	Venue    string   `json:"venue,omitempty" yaml:"venue,omitempty"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	SavedAt  string   `json:"saved_at,omitempty" yaml:"saved_at,omitempty"`
}

type Document struct {
	ExportedAt string  `json:"exported_at" yaml:"exported_at"`
	Count      int     `json:"count" yaml:"count"`
	Papers     []Entry `json:"papers" yaml:"papers"`
}

// ParseFormat accepts a format name or infers it from a file extension.
func ParseFormat(raw string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimPrefix(ext, ".")
	}

	switch name {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

func NewDocument(papers []domain.Paper, exportedAt time.Time) Document {
	entries := make([]Entry, len(papers))
	for i, p := range papers {
		entries[i] = Entry{
			Title:    p.Title,
			Authors:  p.Authors,
			Abstract: p.Abstract,
			Year:     p.Year,
			Venue:    p.Venue,
			Tags:     p.Tags,
		}
		if !p.SavedAt.IsZero() {
			entries[i].SavedAt = p.SavedAt.UTC().Format(time.RFC3339)
		}
	}

	return Document{
		ExportedAt: exportedAt.UTC().Format(time.RFC3339),
		Count:      len(entries),
		Papers:     entries,
	}
}

func Write(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return encoder.Close()
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
