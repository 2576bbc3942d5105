package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/station-saarthi/saarthi-cli/internal/lookup"
	"github.com/station-saarthi/saarthi-cli/internal/models"
)

const maxPanelWidth = 72

// View renders the entire TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Starting..."
	}

	width := m.width - 2
	if width > maxPanelWidth {
		width = maxPanelWidth
	}
	if width < 30 {
		width = 30
	}

	header := styleLogo.Render(headerTitle)
	form := m.renderForm(width)
	results := m.renderResults(width)
	statusBar := m.renderStatusBar()

	parts := []string{header, form}
	if results != "" {
		parts = append(parts, results)
	}
	parts = append(parts, statusBar)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderForm renders the search label, input with its icon, the button and
// any inline message.
func (m Model) renderForm(width int) string {
	var b strings.Builder
	b.WriteString(styleHeader.Render(panelTitle))
	b.WriteString("\n\n")
	b.WriteString(styleMuted.Render(inputLabel))
	b.WriteString("\n")

	inputBorder := stylePanelNormal
	if m.focus == focusInput {
		inputBorder = stylePanelFocused
	}
	input := inputBorder.Width(width - 8).Render(m.searchInput.View() + " ⌕")
	b.WriteString(input)
	b.WriteString("\n")

	button := styleButton
	if m.focus == focusButton {
		button = styleButtonFocused
	}
	b.WriteString(button.Render(buttonLabel))

	switch {
	case m.state.Loading():
		b.WriteString("\n\n")
		b.WriteString(styleLoading.Render("Loading..."))
	case m.state.Status == lookup.StatusError:
		b.WriteString("\n\n")
		b.WriteString(styleError.Render(m.state.Message))
	}

	return stylePanelNormal.Width(width).Render(b.String())
}

// renderResults renders the read-only train fields. Empty unless the
// latest lookup succeeded.
func (m Model) renderResults(width int) string {
	if m.state.Status != lookup.StatusSuccess || m.state.Details == nil {
		return ""
	}

	var lines []string
	for _, f := range m.state.Details.Fields() {
		lines = append(lines, styleLabel.Render(f.Label)+renderValue(f))
	}
	return stylePanelNormal.Width(width).Render(strings.Join(lines, "\n"))
}

func renderValue(f models.Field) string {
	switch {
	case f.Value == models.NotAvailable:
		return styleMuted.Render(f.Value)
	case f.Label == models.LabelTrainNumber:
		return styleNumber.Render(f.Value)
	case f.Label == models.LabelPlatform:
		return stylePlatform.Render(f.Value)
	default:
		return styleValue.Render(f.Value)
	}
}

// renderStatusBar renders the key hints at the bottom.
func (m Model) renderStatusBar() string {
	hints := "enter: search  tab: focus  esc: back  ctrl+c: quit"
	if m.focus == focusButton {
		hints = "enter/space: search  tab: focus  esc: back  ctrl+c: quit"
	}
	return styleStatusBar.Width(m.width).Render(" " + hints)
}
