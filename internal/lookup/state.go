// Package lookup holds the view state of a train lookup: what the user
// currently sees (idle, loading, a train, or an error) and the rules for
// moving between those states.
//
// A State is a value. Submit and Resolve return the next State, which keeps
// it usable directly inside a Bubble Tea model.
package lookup

import (
	"context"
	"errors"
	"strings"

	"github.com/station-saarthi/saarthi-cli/internal/api"
	"github.com/station-saarthi/saarthi-cli/internal/models"
)

// User-facing messages
const (
	MsgEmptyQuery = "Please enter a train number or name to search"
	MsgNotFound   = "Train not found"
	MsgFallback   = "An error occurred while fetching the train details"
)

// Status tags which of the four view states holds
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// State is the single source of truth for the results panel.
// Details is set only in StatusSuccess, Message only in StatusError.
type State struct {
	Status  Status
	Details *models.TrainDetails
	Message string

	seq int
}

// Ticket identifies one accepted submission
type Ticket struct {
	Seq   int
	Query string
}

// Result is the outcome of the request issued for a Ticket
type Result struct {
	Seq     int
	Details *models.TrainDetails
	Err     error
}

// Finder looks up a train. *api.Client implements it.
type Finder interface {
	GetTrain(ctx context.Context, query string) (*models.TrainDetails, error)
}

// Loading reports whether a lookup is in flight
func (s State) Loading() bool {
	return s.Status == StatusLoading
}

// Seq returns the sequence number of the latest submission
func (s State) Seq() int {
	return s.seq
}

// Submit starts a lookup for query. An empty or whitespace-only query moves
// to the validation error and returns a nil Ticket: no request may be made.
// Either way the sequence number advances, so a result still in flight from
// an earlier submission will be discarded.
func (s State) Submit(query string) (State, *Ticket) {
	s.seq++
	s.Details = nil

	if strings.TrimSpace(query) == "" {
		s.Status = StatusError
		s.Message = MsgEmptyQuery
		return s, nil
	}

	s.Status = StatusLoading
	s.Message = ""
	return s, &Ticket{Seq: s.seq, Query: query}
}

// Resolve applies r if it belongs to the latest submission. The second
// return value is false when r was stale and the state is unchanged.
func (s State) Resolve(r Result) (State, bool) {
	if r.Seq != s.seq || s.Status != StatusLoading {
		return s, false
	}

	if r.Err != nil {
		s.Status = StatusError
		s.Details = nil
		s.Message = Message(r.Err)
		return s, true
	}

	s.Status = StatusSuccess
	s.Details = r.Details
	s.Message = ""
	return s, true
}

// Run performs the request for t and always returns a Result for it
func Run(ctx context.Context, f Finder, t Ticket) Result {
	details, err := f.GetTrain(ctx, t.Query)
	if err == nil && details == nil {
		err = errors.New(MsgFallback)
	}
	return Result{Seq: t.Seq, Details: details, Err: err}
}

// Message maps a lookup error to the text shown to the user
func Message(err error) string {
	if err == nil {
		return ""
	}

	var ve *api.ValidationError
	if errors.As(err, &ve) {
		return MsgEmptyQuery
	}
	if errors.Is(err, api.ErrNotFound) {
		return MsgNotFound
	}
	if errors.Is(err, api.ErrEmptyResponse) {
		return MsgFallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgFallback
}
