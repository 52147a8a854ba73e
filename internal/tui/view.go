package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pathtools/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
			Bold(true)

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	activeColor = lipgloss.Color("205")
	borderColor = lipgloss.Color("63")
)

// StatusIcon picks the marker shown in front of a search directory.
func StatusIcon(lookup model.Lookup, dir model.SearchDir) string {
	switch {
	case dir.Matched():
		if first, ok := lookup.First(); ok && first.Index == dir.Index {
			return model.IconMatch
		}
		return model.IconShadowed
	case !dir.Exists:
		return model.IconMissing
	case dir.IsDuplicate:
		return model.IconDuplicate
	case dir.IsSymlink:
		return model.IconSymlink
	default:
		return model.IconOK
	}
}

// View renders the two panels plus header and footer.
func (m AppModel) View() string {
	if m.Loading {
		return "\n  Searching... please wait.\n"
	}

	width := m.WindowSize.Width
	height := m.WindowSize.Height

	netWidth := width - 6
	if netWidth < 20 {
		netWidth = 20
	}

	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	boxHeight := height - 6
	if boxHeight < 6 {
		boxHeight = 6
	}

	interiorHeight := boxHeight - 2

	// LEFT PANEL: search directories
	var leftView strings.Builder
	leftView.WriteString(titleStyle.Render(fmt.Sprintf("Search path for %q", m.Lookup.Name)))
	leftView.WriteString("\n\n")

	visibleItems := interiorHeight - 2
	if visibleItems < 1 {
		visibleItems = 1
	}
	startIdx := 0
	endIdx := len(m.FilteredIndices)

	if len(m.FilteredIndices) > visibleItems {
		if m.SelectedIdx >= visibleItems/2 {
			startIdx = m.SelectedIdx - (visibleItems / 2)
		}
		if startIdx+visibleItems > len(m.FilteredIndices) {
			startIdx = len(m.FilteredIndices) - visibleItems
		}
		endIdx = startIdx + visibleItems
	}

	if len(m.FilteredIndices) == 0 {
		leftView.WriteString(dimStyle.Render("(no directories to show)"))
		leftView.WriteString("\n")
	}

	for i := startIdx; i < endIdx; i++ {
		dir := m.Lookup.Dirs[m.FilteredIndices[i]]

		value := dir.Value
		if value == "" {
			value = "(empty)"
		}

		line := fmt.Sprintf("%2d. %s %s", dir.Index+1, StatusIcon(m.Lookup, dir), value)
		if len(line) > leftWidth-2 && leftWidth > 8 {
			line = line[:leftWidth-5] + "..."
		}

		style := normalStyle
		switch {
		case i == m.SelectedIdx:
			style = selectedStyle
		case dir.Matched():
			style = matchStyle
		case !dir.Exists:
			style = dimStyle
		}

		leftView.WriteString(style.Render(line))
		leftView.WriteString("\n")
	}

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(activeColor).
		Render(strings.TrimSuffix(leftView.String(), "\n"))

	// RIGHT PANEL: details of the selected directory
	vp := m.DetailsViewport
	vp.Width = rightWidth
	vp.Height = interiorHeight

	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(vp.View())

	header := titleStyle.Render("findinpath") + "  " + m.summary()

	footer := dimStyle.Render("j/k move • / new name • m matches only • q quit")
	if m.InputMode {
		footer = "Name: " + m.InputBuffer.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		footer,
	)
}

func (m AppModel) summary() string {
	switch n := len(m.Lookup.Matches); n {
	case 0:
		return adviceStyle.Render(fmt.Sprintf("%s not found in %d directories", m.Lookup.Name, len(m.Lookup.Dirs)))
	case 1:
		return matchStyle.Render("1 match")
	default:
		return matchStyle.Render(fmt.Sprintf("%d matches, first wins", n))
	}
}

func (m AppModel) renderDetails() string {
	dir, ok := m.Selected()
	if !ok {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Directory"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Position:  %d of %d\n", dir.Index+1, len(m.Lookup.Dirs))
	fmt.Fprintf(&b, "Value:     %s\n", dir.Value)

	if dir.Target != "" && dir.Target != dir.Value {
		fmt.Fprintf(&b, "Resolves:  %s\n", dir.Target)
	}

	switch {
	case !dir.Exists:
		b.WriteString(adviceStyle.Render("Directory does not exist."))
		b.WriteString("\n")
	case dir.IsSymlink:
		b.WriteString("Directory is a symlink.\n")
	}

	if dir.IsDuplicate {
		b.WriteString(adviceStyle.Render(fmt.Sprintf("Duplicate of entry %d; it is searched twice.", dir.DuplicateOf+1)))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	if !dir.Matched() {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%s is not here.", m.Lookup.Name)))
		return b.String()
	}

	fmt.Fprintf(&b, "Match:     %s\n", matchStyle.Render(dir.Match))

	if first, ok := m.Lookup.First(); ok && first.Index != dir.Index {
		b.WriteString(adviceStyle.Render(fmt.Sprintf("Shadowed by entry %d (%s).", first.Index+1, first.Match)))
		b.WriteString("\n")
	} else {
		b.WriteString("This is the copy that runs.\n")
	}

	return b.String()
}
