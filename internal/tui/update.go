package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/station-saarthi/saarthi-cli/internal/lookup"
)

// Update handles all messages and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case lookupResultMsg:
		return m.handleLookupResult(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Pass remaining messages to textinput when focused
	if m.focus == focusInput {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleLookupResult(msg lookupResultMsg) (tea.Model, tea.Cmd) {
	next, applied := m.state.Resolve(msg.Result)
	if !applied {
		m.log.Debug().Int("seq", msg.Seq).Int("latest", m.state.Seq()).Msg("Discarding stale lookup result")
		return m, nil
	}
	m.state = next

	if m.state.Status == lookup.StatusError {
		m.log.Debug().Err(msg.Err).Int("seq", msg.Seq).Msg("Lookup failed")
	} else if m.state.Details != nil {
		m.log.Debug().Str("train", m.state.Details.TrainNumber).Int("seq", msg.Seq).Msg("Lookup succeeded")
	}
	m.observe(m.state.Status.String())
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "shift+tab":
		return m.toggleFocus(), nil

	case "enter":
		return m.submit()

	case " ":
		if m.focus == focusButton {
			return m.submit()
		}
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) toggleFocus() Model {
	if m.focus == focusInput {
		m.focus = focusButton
		m.searchInput.Blur()
	} else {
		m.focus = focusInput
		m.searchInput.Focus()
	}
	return m
}

// submit is shared by the search icon (enter in the input) and the button.
func (m Model) submit() (tea.Model, tea.Cmd) {
	var ticket *lookup.Ticket
	m.state, ticket = m.state.Submit(m.searchInput.Value())
	if ticket == nil {
		m.observe(m.state.Status.String())
		return m, nil
	}

	m.log.Debug().Str("query", ticket.Query).Int("seq", ticket.Seq).Msg("Looking up train")
	return m, fetchTrain(m.finder, *ticket, m.timeout)
}
