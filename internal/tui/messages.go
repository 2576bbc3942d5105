package tui

import "github.com/station-saarthi/saarthi-cli/internal/lookup"

// lookupResultMsg carries the outcome of one submission back to the model.
// The embedded sequence number is used for stale-result detection.
type lookupResultMsg struct {
	lookup.Result
}
