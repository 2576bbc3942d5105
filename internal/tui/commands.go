package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/station-saarthi/saarthi-cli/internal/lookup"
)

const apiTimeout = 5 * time.Second

// fetchTrain returns a tea.Cmd that runs the request for ticket.
func fetchTrain(finder lookup.Finder, ticket lookup.Ticket, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return lookupResultMsg{lookup.Run(ctx, finder, ticket)}
	}
}
