package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

type LibrarySort string

const (
	SortNewest LibrarySort = "newest"
	SortOldest LibrarySort = "oldest"
	SortTitle  LibrarySort = "title"
	SortYear   LibrarySort = "year"
)

var ErrUnknownSort = errors.New("unknown library sort order")

func ParseLibrarySort(raw string) (LibrarySort, error) {
	switch LibrarySort(strings.ToLower(strings.TrimSpace(raw))) {
	case "", SortNewest:
		return SortNewest, nil
	case SortOldest:
		return SortOldest, nil
	case SortTitle:
		return SortTitle, nil
	case SortYear:
		return SortYear, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSort, raw)
	}
}

type LibraryQuery struct {
	Search string
	Sort   LibrarySort
}

// Apply filters and orders papers without modifying the input slice.
func (q LibraryQuery) Apply(papers []Paper) []Paper {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]Paper, 0, len(papers))
	for _, paper := range papers {
		if needle == "" || paper.matches(needle) {
			out = append(out, paper)
		}
	}

	sortPapers(out, q.Sort)
	return out
}

func (p Paper) matches(needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Authors), needle) ||
		strings.Contains(strings.ToLower(p.Abstract), needle) {
		return true
	}

	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}

	return false
}

func sortPapers(papers []Paper, order LibrarySort) {
	switch order {
	case SortOldest:
		slices.SortStableFunc(papers, func(a, b Paper) int {
			return a.SavedAt.Compare(b.SavedAt)
		})
	case SortTitle:
		slices.SortStableFunc(papers, func(a, b Paper) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
	case SortYear:
		// papers without a year sink to the bottom
		slices.SortStableFunc(papers, func(a, b Paper) int {
			ay, aok := a.YearValue()
			by, bok := b.YearValue()
			switch {
			case aok && bok:
				return by - ay
			case aok:
				return -1
			case bok:
				return 1
			default:
				return 0
			}
		})
	default:
		slices.SortStableFunc(papers, func(a, b Paper) int {
			return b.SavedAt.Compare(a.SavedAt)
		})
	}
}

type LibraryStats struct {
	Total int
	Today int
}

func ComputeLibraryStats(papers []Paper, now time.Time) LibraryStats {
	stats := LibraryStats{Total: len(papers)}

	year, month, day := now.Date()
	for _, paper := range papers {
		if paper.SavedAt.IsZero() {
			continue
		}
		y, m, d := paper.SavedAt.In(now.Location()).Date()
		if y == year && m == month && d == day {
			stats.Today++
		}
	}

	return stats
}

// FormatSavedAt renders a save time relative to now: "just now", minutes,
// hours and days for the last week, a calendar date beyond that.
func FormatSavedAt(savedAt, now time.Time) string {
	if savedAt.IsZero() {
		return "unknown"
	}

	elapsed := now.Sub(savedAt)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed/time.Minute), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(elapsed/time.Hour), "hour") + " ago"
	case elapsed < 7*24*time.Hour:
		return plural(int(elapsed/(24*time.Hour)), "day") + " ago"
	default:
		return savedAt.In(now.Location()).Format("02 Jan 2006 15:04")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
