package ui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"tally/internal/driver"
)

// RunProgress renders progress for files until events is closed.
// The caller closes events after the batch returns.
func RunProgress(out io.Writer, title string, files []string, events <-chan driver.Event) error {
	model := NewProgressModel(title, files, events)
	p := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("progress ui: %w", err)
	}
	return nil
}
