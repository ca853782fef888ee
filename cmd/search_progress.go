package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bnema/paperswipe/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type searchStarter interface {
	Start(ctx context.Context, cmd application.SearchCommand) (*application.Search, error)
}

type searchFinishedMsg struct {
	search *application.Search
	err    error
}

var (
	progressSpinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	progressDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	progressWarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	progressMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// searchProgress runs one search and keeps a spinner on screen until the
// parsed result arrives. Its last frame summarizes what came back.
type searchProgress struct {
	spinner spinner.Model
	topic   string
	started time.Time
	now     func() time.Time
	start   tea.Cmd
	search  *application.Search
	err     error
}

func newSearchProgress(ctx context.Context, starter searchStarter, cmd application.SearchCommand, now func() time.Time) searchProgress {
	if now == nil {
		now = time.Now
	}

	return searchProgress{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(progressSpinnerStyle)),
		topic:   cmd.Topic,
		started: now(),
		now:     now,
		start: func() tea.Msg {
			search, err := starter.Start(ctx, cmd)
			return searchFinishedMsg{search: search, err: err}
		},
	}
}

func (m searchProgress) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start)
}

func (m searchProgress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.finished() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case searchFinishedMsg:
		m.search = msg.search
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m searchProgress) finished() bool {
	return m.search != nil || m.err != nil
}

func (m searchProgress) View() string {
	elapsed := progressMutedStyle.Render(fmt.Sprintf("%.1fs", m.now().Sub(m.started).Seconds()))

	switch {
	case m.err != nil:
		// cobra prints the error itself
		return ""
	case m.search == nil:
		return fmt.Sprintf("%s Asking for papers on %q... %s", m.spinner.View(), m.topic, elapsed)
	case m.search.Result.Fallback:
		return fmt.Sprintf("%s %s %s\n",
			progressWarnStyle.Render("!"),
			fmt.Sprintf("No usable papers on %q, showing %d placeholders", m.topic, len(m.search.Result.Papers)),
			elapsed)
	default:
		return fmt.Sprintf("%s %s %s\n",
			progressDoneStyle.Render("✓"),
			fmt.Sprintf("%d papers on %q (%s)", len(m.search.Result.Papers), m.topic, m.search.Result.Path),
			elapsed)
	}
}

// runSearchProgress starts the search behind a spinner drawn on output.
func runSearchProgress(ctx context.Context, output io.Writer, starter searchStarter, cmd application.SearchCommand) (*application.Search, error) {
	p := tea.NewProgram(
		newSearchProgress(ctx, starter, cmd, time.Now),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	progress, ok := finalModel.(searchProgress)
	if !ok {
		return nil, fmt.Errorf("unexpected final search progress model type %T", finalModel)
	}

	return progress.search, progress.err
}
