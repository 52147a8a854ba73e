package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the interactive browser for name and blocks until the user quits.
// Surveys run with ctx, and cancelling it ends the program.
func Run(ctx context.Context, surveyor Surveyor, name string) error {
	m := InitialModel(ctx, surveyor, name)
	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
