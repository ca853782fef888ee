package swipe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/paperswipe/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	cardWidth   = 60
	cardMargin  = 8
	stackPeek   = 3
	abstractMax = 320
)

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	card     lipgloss.Style
	paper    lipgloss.Style
	meta     lipgloss.Style
	abstract lipgloss.Style
	save     lipgloss.Style
	discard  lipgloss.Style
	help     lipgloss.Style
	warning  lipgloss.Style
	stack    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(cardWidth),
		paper:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		abstract: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		save:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		discard:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		help:     lipgloss.NewStyle().Faint(true),
		warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		stack:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

func (m Model) View() string {
	if m.err != nil {
		return m.styles.warning.Render("error: "+m.err.Error()) + "\n"
	}

	lines := []string{m.styles.title.Render(m.titleLine())}
	if m.fallback {
		lines = append(lines, m.styles.warning.Render("The recommendation service returned no usable papers; showing placeholders."))
	}

	if m.session.Complete() {
		lines = append(lines,
			"",
			m.styles.title.Render("All papers reviewed."),
			fmt.Sprintf("Saved %d, skipped %d.", m.saved, m.skipped),
			m.styles.help.Render("enter/q: quit"),
		)
		return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
	}

	paper, _ := m.session.Current()
	lines = append(lines, "", m.renderCard(paper))
	if behind := len(m.session.Peek(stackPeek)) - 1; behind > 0 {
		lines = append(lines, m.styles.stack.Render(strings.Repeat("  ▔▔▔▔", behind)))
	}
	lines = append(lines,
		"",
		m.buttons(),
		m.styles.help.Render("drag the card or ←/→ then enter · s save · d discard · q quit"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func (m Model) titleLine() string {
	cursor, total := m.session.Progress()
	position := cursor + 1
	if position > total {
		position = total
	}

	title := fmt.Sprintf("Papers %d/%d", position, total)
	if m.topic != "" {
		title = fmt.Sprintf("%s · %s", m.topic, title)
	}
	return title
}

func (m Model) renderCard(paper domain.Paper) string {
	body := []string{m.styles.paper.Render(paper.Title), m.styles.meta.Render(meta(paper))}
	if abstract := clip(paper.Abstract, abstractMax); abstract != "" {
		body = append(body, "", m.styles.abstract.Render(abstract))
	}

	card := m.styles.card
	switch m.session.Intent() {
	case domain.IntentSave:
		card = card.BorderForeground(lipgloss.Color("42"))
		body = append([]string{m.styles.save.Render("SAVE")}, body...)
	case domain.IntentDiscard:
		card = card.BorderForeground(lipgloss.Color("203"))
		body = append([]string{m.styles.discard.Render("DISCARD")}, body...)
	}

	return card.MarginLeft(m.cardOffset()).Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

// cardOffset shifts the card horizontally with the drag, clamped so it
// stays on screen.
func (m Model) cardOffset() int {
	dx, _ := m.session.Displacement()
	offset := cardMargin + int(dx/UnitsPerCell)

	limit := m.width - cardWidth - 4
	if limit < cardMargin {
		limit = cardMargin
	}

	switch {
	case offset < 0:
		return 0
	case offset > limit:
		return limit
	default:
		return offset
	}
}

func (m Model) buttons() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Repeat(" ", cardMargin),
		m.styles.discard.Render("[d] ✗ discard"),
		"    ",
		m.styles.save.Render("[s] ✓ save"),
	)
}

func meta(paper domain.Paper) string {
	fields := []string{paper.Authors}
	if year, ok := paper.YearValue(); ok {
		fields = append(fields, strconv.Itoa(year))
	}
	if paper.Venue != "" {
		fields = append(fields, paper.Venue)
	}
	return strings.Join(fields, " · ")
}

func clip(text string, limit int) string {
	runes := []rune(strings.Join(strings.Fields(text), " "))
	if len(runes) <= limit {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:limit])) + "..."
}
