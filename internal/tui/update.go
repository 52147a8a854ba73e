package tui

import (
	"context"

	"pathtools/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgLookupReady indicates that a survey has completed.
type MsgLookupReady model.Lookup

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.DetailsViewport.Width = msg.Width / 2
		m.DetailsViewport.Height = msg.Height - 4 // minus footer/header
		return m, nil

	case MsgLookupReady:
		m.Loading = false
		m.Lookup = model.Lookup(msg)
		m.applyFilter()
		m.refreshDetails()
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.Loading = true
				return m, SurveyCmd(m.ctx, m.Surveyor, m.InputBuffer.Value())
			case tea.KeyEsc:
				// Abandon the edit, keep the current lookup
				m.InputMode = false
				m.InputBuffer.Blur()
				m.InputBuffer.SetValue(m.Lookup.Name)
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.refreshDetails()
			}
		case "down", "j":
			if m.SelectedIdx < len(m.FilteredIndices)-1 {
				m.SelectedIdx++
				m.refreshDetails()
			}
		case "m":
			m.MatchesOnly = !m.MatchesOnly
			m.applyFilter()
			m.refreshDetails()
		case "/", "w":
			m.InputMode = true
			m.InputBuffer.SetValue("")
			focus := m.InputBuffer.Focus()
			return m, tea.Batch(focus, textinput.Blink)
		case "pgdown", "ctrl+d":
			m.DetailsViewport.HalfViewDown()
		case "pgup", "ctrl+u":
			m.DetailsViewport.HalfViewUp()
		}
	}

	return m, cmd
}

func (m *AppModel) applyFilter() {
	var filtered []int
	for i, dir := range m.Lookup.Dirs {
		if m.MatchesOnly && !dir.Matched() {
			continue
		}
		filtered = append(filtered, i)
	}
	m.FilteredIndices = filtered

	// Bounds check
	if m.SelectedIdx >= len(m.FilteredIndices) {
		if len(m.FilteredIndices) > 0 {
			m.SelectedIdx = len(m.FilteredIndices) - 1
		} else {
			m.SelectedIdx = 0
		}
	}
}

// Selected returns the directory under the cursor.
func (m AppModel) Selected() (model.SearchDir, bool) {
	if m.SelectedIdx < 0 || m.SelectedIdx >= len(m.FilteredIndices) {
		return model.SearchDir{}, false
	}
	return m.Lookup.Dirs[m.FilteredIndices[m.SelectedIdx]], true
}

func (m *AppModel) refreshDetails() {
	m.DetailsViewport.SetContent(m.renderDetails())
	m.DetailsViewport.GotoTop()
}

// SurveyCmd runs the survey in the background.
func SurveyCmd(ctx context.Context, surveyor Surveyor, name string) tea.Cmd {
	return func() tea.Msg {
		return MsgLookupReady(surveyor.Survey(ctx, name))
	}
}
