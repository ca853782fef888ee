package library

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/paperswipe/internal/application"
	"github.com/bnema/paperswipe/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const defaultAbstractWidth = 200

type RenderOptions struct {
	Now time.Time
	// Query is echoed in the header when set.
	Query domain.LibraryQuery
	// AbstractWidth truncates abstracts; zero uses the default, negative
	// disables truncation.
	AbstractWidth int
}

func renderView(view application.LibraryView, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Saved Papers"),
		s.header.Render(headerLine(view, opts)),
	}

	if len(view.Papers) == 0 {
		message := "Your library is empty. Run a search and swipe right to save papers."
		if view.Stats.Total > 0 {
			message = "No saved papers match the filter."
		}
		lines = append(lines, s.empty.Render(message))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for i, paper := range view.Papers {
		lines = append(lines, s.section.Render(renderPaper(i+1, paper, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headerLine(view application.LibraryView, opts RenderOptions) string {
	parts := []string{
		fmt.Sprintf("total: %d", view.Stats.Total),
		fmt.Sprintf("today: %d", view.Stats.Today),
	}
	if len(view.Papers) != view.Stats.Total {
		parts = append(parts, fmt.Sprintf("shown: %d", len(view.Papers)))
	}
	if search := strings.TrimSpace(opts.Query.Search); search != "" {
		parts = append(parts, fmt.Sprintf("filter: %q", search))
	}
	if opts.Query.Sort != "" {
		parts = append(parts, "sort: "+string(opts.Query.Sort))
	}
	return strings.Join(parts, "  ")
}

func renderPaper(n int, paper domain.Paper, opts RenderOptions, s styles) string {
	parts := []string{
		s.paper.Render(fmt.Sprintf("%d. %s", n, paper.Title)),
		s.meta.Render(metaLine(paper)),
	}

	if abstract := truncate(paper.Abstract, abstractWidth(opts)); abstract != "" {
		parts = append(parts, s.abstract.Render(abstract))
	}
	if len(paper.Tags) > 0 {
		parts = append(parts, s.tag.Render("#"+strings.Join(paper.Tags, " #")))
	}
	parts = append(parts, s.savedAt.Render("saved "+domain.FormatSavedAt(paper.SavedAt, now(opts))))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func metaLine(paper domain.Paper) string {
	fields := []string{paper.Authors}
	if year, ok := paper.YearValue(); ok {
		fields = append(fields, strconv.Itoa(year))
	}
	if venue := strings.TrimSpace(paper.Venue); venue != "" {
		fields = append(fields, venue)
	}
	return strings.Join(fields, " · ")
}

func abstractWidth(opts RenderOptions) int {
	if opts.AbstractWidth == 0 {
		return defaultAbstractWidth
	}
	return opts.AbstractWidth
}

func truncate(text string, width int) string {
	text = strings.Join(strings.Fields(text), " ")
	if width < 0 {
		return text
	}

	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	return strings.TrimSpace(string(runes[:width])) + "..."
}

func now(opts RenderOptions) time.Time {
	if opts.Now.IsZero() {
		return time.Now()
	}
	return opts.Now
}
