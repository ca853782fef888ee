package parser

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/bnema/paperswipe/internal/domain"
)

// candidate is a paper entry after lenient decoding and before validation.
type candidate struct {
	Title    string `validate:"required"`
	Authors  string `validate:"required"`
	Abstract string `validate:"required"`
	Year     *int
	Venue    string
	Tags     []string
}

func (c candidate) paper() domain.Paper {
	return domain.Paper{
		Title:    c.Title,
		Authors:  c.Authors,
		Abstract: c.Abstract,
		Year:     c.Year,
		Venue:    c.Venue,
		Tags:     c.Tags,
	}
}

// decodeEntry reads one array element. Non-object entries report false.
func decodeEntry(entry any) (candidate, bool) {
	object, ok := entry.(map[string]any)
	if !ok {
		return candidate{}, false
	}

	return candidate{
		Title:    textField(object["title"]),
		Authors:  authorsField(object["authors"]),
		Abstract: textField(object["abstract"]),
		Year:     yearField(object["year"]),
		Venue:    textField(object["venue"]),
		Tags:     tagsField(object["tags"]),
	}, true
}

func textField(value any) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func authorsField(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		names := make([]string, 0, len(v))
		for _, item := range v {
			if name := textField(item); name != "" {
				names = append(names, name)
			}
		}
		return strings.Join(names, ", ")
	default:
		return ""
	}
}

func yearField(value any) *int {
	var raw string
	switch v := value.(type) {
	case json.Number:
		raw = v.String()
	case float64:
		raw = strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		raw = strings.TrimSpace(v)
	default:
		return nil
	}

	if year, err := strconv.Atoi(raw); err == nil {
		return &year
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) {
		return nil
	}
	year := int(f)
	return &year
}

func tagsField(value any) []string {
	switch v := value.(type) {
	case string:
		if tag := strings.TrimSpace(v); tag != "" {
			return []string{tag}
		}
		return nil
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if tag := textField(item); tag != "" {
				tags = append(tags, tag)
			}
		}
		if len(tags) == 0 {
			return nil
		}
		return tags
	default:
		return nil
	}
}
