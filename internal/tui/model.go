package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/station-saarthi/saarthi-cli/internal/lookup"
)

const (
	headerTitle      = "Station Saarthi | Schedule"
	panelTitle       = "Train Schedule"
	inputLabel       = "Search by Train Number or Name"
	inputPlaceholder = "Enter train number or name..."
	buttonLabel      = "Search Train"
)

type focusTarget int

const (
	focusInput focusTarget = iota
	focusButton
)

// Observer counts finished lookups. *metrics.Collector implements it.
type Observer interface {
	ObserveLookup(status string)
}

// Model is the root Bubble Tea model for the train lookup view.
type Model struct {
	finder   lookup.Finder
	log      zerolog.Logger
	observer Observer
	timeout  time.Duration

	width  int
	height int

	searchInput textinput.Model
	focus       focusTarget

	state lookup.State
}

// Option configures a Model
type Option func(*Model)

// WithLogger sets the logger for lookup events
func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) {
		m.log = l
	}
}

// WithObserver records the outcome of every lookup
func WithObserver(o Observer) Option {
	return func(m *Model) {
		m.observer = o
	}
}

// WithTimeout bounds each request issued from the view
func WithTimeout(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// New creates a new TUI model.
func New(finder lookup.Finder, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = inputPlaceholder
	ti.Focus()
	ti.Width = 40

	m := Model{
		finder:      finder,
		log:         zerolog.Nop(),
		timeout:     apiTimeout,
		searchInput: ti,
		focus:       focusInput,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// State returns the current view state
func (m Model) State() lookup.State {
	return m.state
}

// Init returns the initial command (textinput blink).
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) observe(status string) {
	if m.observer != nil {
		m.observer.ObserveLookup(status)
	}
}
