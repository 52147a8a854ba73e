package tui

import (
	"context"

	"pathtools/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Surveyor inspects the search directories for a name.
type Surveyor interface {
	Survey(ctx context.Context, name string) model.Lookup
}

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	ctx      context.Context
	Surveyor Surveyor
	Lookup   model.Lookup
	Loading  bool

	// UI State
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg
	MatchesOnly bool // Show only directories containing the name ('m')

	// Name editing
	InputMode       bool
	InputBuffer     textinput.Model
	FilteredIndices []int // Indices of Lookup.Dirs to show

	// Components
	DetailsViewport viewport.Model
}

// InitialModel returns the initial state for looking up name.
func InitialModel(ctx context.Context, surveyor Surveyor, name string) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Binary name..."
	ti.CharLimit = 128
	ti.Width = 30
	ti.SetValue(name)

	return AppModel{
		ctx:             ctx,
		Surveyor:        surveyor,
		Loading:         true,
		InputBuffer:     ti,
		DetailsViewport: viewport.New(40, 10),
	}
}

// Init starts the first survey.
func (m AppModel) Init() tea.Cmd {
	return SurveyCmd(m.ctx, m.Surveyor, m.InputBuffer.Value())
}
