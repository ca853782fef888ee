package swipe

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run drives the card stack until every card is committed or the user
// quits. The program uses the alternate screen and mouse cell motion.
func Run(ctx context.Context, m Model, input io.Reader, output io.Writer) (Summary, error) {
	p := tea.NewProgram(
		m,
		tea.WithContext(ctx),
		tea.WithInput(input),
		tea.WithOutput(output),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return Summary{}, err
	}

	result, ok := finalModel.(Model)
	if !ok {
		return Summary{}, fmt.Errorf("unexpected final swipe model type %T", finalModel)
	}
	if result.Err() != nil {
		return result.Summary(), result.Err()
	}

	return result.Summary(), nil
}
