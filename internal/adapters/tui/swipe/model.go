// Package swipe is the interactive card stack used to triage recommended
// papers. Mouse drags and keys are translated into gesture calls on a
// domain.SwipeSession.
package swipe

import (
	"github.com/bnema/paperswipe/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// UnitsPerCell converts a horizontal mouse displacement in terminal
	// cells into gesture units.
	UnitsPerCell = 10.0
	// NudgeUnits is the drag added by one arrow key press.
	NudgeUnits = 40.0
)

// OutcomeFunc receives every committed outcome. A returned error stops the
// program.
type OutcomeFunc func(domain.Outcome) error

type Model struct {
	session   *domain.SwipeSession
	topic     string
	fallback  bool
	onOutcome OutcomeFunc
	styles    styles

	width   int
	mouseX  int
	mouseY  int
	pressed bool

	last    domain.Outcome
	saved   int
	skipped int
	err     error
	quit    bool
}

type Options struct {
	Topic string
	// Fallback marks the papers as placeholders so the view can say so.
	Fallback  bool
	OnOutcome OutcomeFunc
}

func New(session *domain.SwipeSession, opts Options) Model {
	return Model{
		session:   session,
		topic:     opts.Topic,
		fallback:  opts.Fallback,
		onOutcome: opts.OnOutcome,
		styles:    newStyles(),
		width:     80,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quit = true
		return m, tea.Quit
	case "left", "h":
		return m.nudge(-NudgeUnits)
	case "right", "l":
		return m.nudge(NudgeUnits)
	case "enter", " ":
		if m.session.Complete() {
			m.quit = true
			return m, tea.Quit
		}
		return m.apply(m.session.EndDrag())
	case "s":
		return m.apply(m.session.Save())
	case "d":
		return m.apply(m.session.Discard())
	default:
		return m, nil
	}
}

func (m Model) nudge(units float64) (tea.Model, tea.Cmd) {
	if m.session.State() == domain.GestureIdle {
		m.session.BeginDrag()
	}
	dx, dy := m.session.Displacement()
	return m.apply(m.session.UpdateDrag(dx+units, dy))
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		outcome := m.session.BeginDrag()
		if outcome.Kind != domain.OutcomeDragStarted {
			return m, nil
		}
		m.pressed = true
		m.mouseX, m.mouseY = msg.X, msg.Y
		return m.apply(outcome)
	case tea.MouseActionMotion:
		if !m.pressed {
			return m, nil
		}
		dx := float64(msg.X-m.mouseX) * UnitsPerCell
		dy := float64(msg.Y-m.mouseY) * UnitsPerCell
		return m.apply(m.session.UpdateDrag(dx, dy))
	case tea.MouseActionRelease:
		if !m.pressed {
			return m, nil
		}
		m.pressed = false
		return m.apply(m.session.EndDrag())
	default:
		return m, nil
	}
}

func (m Model) apply(outcome domain.Outcome) (tea.Model, tea.Cmd) {
	if outcome.Kind == domain.OutcomeIgnored {
		return m, nil
	}
	m.last = outcome

	if !outcome.Committed() {
		return m, nil
	}

	m.pressed = false
	if outcome.Kind == domain.OutcomeAccepted {
		m.saved++
	} else {
		m.skipped++
	}

	if m.onOutcome != nil {
		if err := m.onOutcome(outcome); err != nil {
			m.err = err
			return m, tea.Quit
		}
	}

	return m, nil
}

// Summary describes a finished or abandoned session.
type Summary struct {
	Saved     int
	Skipped   int
	Remaining int
	Accepted  []domain.Paper
	Quit      bool
}

func (m Model) Summary() Summary {
	cursor, total := m.session.Progress()
	return Summary{
		Saved:     m.saved,
		Skipped:   m.skipped,
		Remaining: total - cursor,
		Accepted:  m.session.Accepted(),
		Quit:      m.quit && !m.session.Complete(),
	}
}

func (m Model) Err() error {
	return m.err
}
