package domain

import (
	"strings"
	"time"
)

type Paper struct {
	Title    string    `json:"title"`
	Authors  string    `json:"authors"`
	Abstract string    `json:"abstract"`
	Year     *int      `json:"year,omitempty"`
	Venue    string    `json:"venue,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
	SavedAt  time.Time `json:"saved_at,omitzero"`
}

// Valid reports whether title, authors and abstract are all non-blank.
func (p Paper) Valid() bool {
	return strings.TrimSpace(p.Title) != "" &&
		strings.TrimSpace(p.Authors) != "" &&
		strings.TrimSpace(p.Abstract) != ""
}

// SameAs compares library identity: exact, case-sensitive title equality.
func (p Paper) SameAs(other Paper) bool {
	return p.Title == other.Title
}

func (p Paper) WithSavedAt(at time.Time) Paper {
	p.SavedAt = at
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	return p
}

func (p Paper) YearValue() (int, bool) {
	if p.Year == nil {
		return 0, false
	}
	return *p.Year, true
}

func IntPtr(v int) *int {
	return &v
}
