package tui

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/station-saarthi/saarthi-cli/internal/api"
	"github.com/station-saarthi/saarthi-cli/internal/lookup"
	"github.com/station-saarthi/saarthi-cli/internal/models"
	"github.com/station-saarthi/saarthi-cli/internal/testutil"
)

// fakeFinder answers every query with the same details or error
type fakeFinder struct {
	mu      sync.Mutex
	details *models.TrainDetails
	err     error
	queries []string
}

func (f *fakeFinder) GetTrain(_ context.Context, query string) (*models.TrainDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.details, f.err
}

type fakeObserver struct {
	statuses []string
}

func (o *fakeObserver) ObserveLookup(status string) {
	o.statuses = append(o.statuses, status)
}

func minimalTrain(t *testing.T) *models.TrainDetails {
	t.Helper()
	var train models.TrainDetails
	testutil.AssertNil(t, json.Unmarshal([]byte(testutil.SampleMinimalTrainResponse), &train))
	return &train
}

func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func keySpace() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}} }

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func TestNew(t *testing.T) {
	client, _ := api.NewClient()
	m := New(client)

	testutil.AssertTrue(t, m.finder != nil)
	testutil.AssertEqual(t, m.focus, focusInput)
	testutil.AssertTrue(t, m.searchInput.Focused())
	testutil.AssertEqual(t, m.searchInput.Placeholder, "Enter train number or name...")
	testutil.AssertEqual(t, m.state.Status, lookup.StatusIdle)
	testutil.AssertEqual(t, m.timeout, apiTimeout)
}

func TestNew_Options(t *testing.T) {
	obs := &fakeObserver{}
	m := New(&fakeFinder{}, WithTimeout(2*time.Second), WithObserver(obs))

	testutil.AssertEqual(t, m.timeout, 2*time.Second)
	testutil.AssertTrue(t, m.observer != nil)

	m = New(&fakeFinder{}, WithTimeout(0))
	testutil.AssertEqual(t, m.timeout, apiTimeout)
}

func TestModel_Init(t *testing.T) {
	m := New(&fakeFinder{})
	testutil.AssertTrue(t, m.Init() != nil)
}

func TestModel_WindowSize(t *testing.T) {
	m, cmd := update(t, New(&fakeFinder{}), tea.WindowSizeMsg{Width: 120, Height: 40})

	testutil.AssertEqual(t, m.width, 120)
	testutil.AssertEqual(t, m.height, 40)
	testutil.AssertTrue(t, cmd == nil)
}

func TestModel_EmptyQuery(t *testing.T) {
	finder := &fakeFinder{details: minimalTrain(t)}
	obs := &fakeObserver{}
	m := New(finder, WithObserver(obs))
	m.searchInput.SetValue("   ")

	m, cmd := update(t, m, keyEnter())

	testutil.AssertTrue(t, cmd == nil)
	testutil.AssertEqual(t, m.state.Status, lookup.StatusError)
	testutil.AssertEqual(t, m.state.Message, lookup.MsgEmptyQuery)
	testutil.AssertFalse(t, m.state.Loading())
	testutil.AssertLen(t, finder.queries, 0)
	testutil.AssertLen(t, obs.statuses, 1)
	testutil.AssertEqual(t, obs.statuses[0], "error")
}

func TestModel_EnterInInput(t *testing.T) {
	finder := &fakeFinder{details: minimalTrain(t)}
	obs := &fakeObserver{}
	m := New(finder, WithObserver(obs))
	m.searchInput.SetValue("12301")

	m, cmd := update(t, m, keyEnter())
	testutil.AssertTrue(t, m.state.Loading())
	if cmd == nil {
		t.Fatal("expected a fetch command")
	}

	m, _ = update(t, m, cmd())

	testutil.AssertLen(t, finder.queries, 1)
	testutil.AssertEqual(t, finder.queries[0], "12301")
	testutil.AssertFalse(t, m.state.Loading())
	testutil.AssertEqual(t, m.state.Status, lookup.StatusSuccess)
	testutil.AssertEqual(t, m.state.Details.TrainName, "Howrah Rajdhani")
	testutil.AssertLen(t, obs.statuses, 1)
	testutil.AssertEqual(t, obs.statuses[0], "success")
}

func TestModel_ButtonTriggers(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"enter", keyEnter()},
		{"space", keySpace()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := &fakeFinder{details: minimalTrain(t)}
			m := New(finder)
			m.searchInput.SetValue("12301")

			m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
			testutil.AssertEqual(t, m.focus, focusButton)

			m, cmd := update(t, m, tt.key)
			testutil.AssertTrue(t, m.state.Loading())
			if cmd == nil {
				t.Fatal("expected a fetch command")
			}
			m, _ = update(t, m, cmd())
			testutil.AssertEqual(t, m.state.Status, lookup.StatusSuccess)
		})
	}
}

func TestModel_SpaceInInputTypes(t *testing.T) {
	m := New(&fakeFinder{})
	m.searchInput.SetValue("Howrah")

	m, _ = update(t, m, keySpace())

	testutil.AssertEqual(t, m.searchInput.Value(), "Howrah ")
	testutil.AssertEqual(t, m.state.Status, lookup.StatusIdle)
}

func TestModel_LongInputNotTruncated(t *testing.T) {
	m := New(&fakeFinder{})
	long := strings.Repeat("Rajdhani ", 20)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(long)})

	testutil.AssertEqual(t, m.searchInput.Value(), long)
}

func TestModel_FocusCycle(t *testing.T) {
	m := New(&fakeFinder{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	testutil.AssertEqual(t, m.focus, focusButton)
	testutil.AssertFalse(t, m.searchInput.Focused())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	testutil.AssertEqual(t, m.focus, focusInput)
	testutil.AssertTrue(t, m.searchInput.Focused())
}

func TestModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		t.Run(key.String(), func(t *testing.T) {
			_, cmd := update(t, New(&fakeFinder{}), key)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			_, ok := cmd().(tea.QuitMsg)
			testutil.AssertTrue(t, ok)
		})
	}
}

func TestModel_NotFound(t *testing.T) {
	finder := &fakeFinder{details: minimalTrain(t)}
	m := New(finder)
	m.searchInput.SetValue("12301")

	m, cmd := update(t, m, keyEnter())
	m, _ = update(t, m, cmd())
	testutil.AssertEqual(t, m.state.Status, lookup.StatusSuccess)

	finder.details = nil
	finder.err = api.NewAPIError(404, "404 Not Found", "/train/00000")
	m.searchInput.SetValue("00000")

	m, cmd = update(t, m, keyEnter())
	testutil.AssertTrue(t, m.state.Details == nil)
	m, _ = update(t, m, cmd())

	testutil.AssertEqual(t, m.state.Status, lookup.StatusError)
	testutil.AssertEqual(t, m.state.Message, lookup.MsgNotFound)
	testutil.AssertTrue(t, m.state.Details == nil)
}

func TestModel_StaleResultDiscarded(t *testing.T) {
	first := minimalTrain(t)
	second := &models.TrainDetails{TrainNumber: "12951", TrainName: "Mumbai Rajdhani"}
	obs := &fakeObserver{}
	m := New(&fakeFinder{}, WithObserver(obs))

	m.searchInput.SetValue("12301")
	m, _ = update(t, m, keyEnter())
	firstSeq := m.state.Seq()

	m.searchInput.SetValue("12951")
	m, _ = update(t, m, keyEnter())
	secondSeq := m.state.Seq()

	// Second response arrives first
	m, _ = update(t, m, lookupResultMsg{lookup.Result{Seq: secondSeq, Details: second}})
	m, _ = update(t, m, lookupResultMsg{lookup.Result{Seq: firstSeq, Details: first}})

	testutil.AssertEqual(t, m.state.Status, lookup.StatusSuccess)
	testutil.AssertEqual(t, m.state.Details.TrainNumber, "12951")
	testutil.AssertLen(t, obs.statuses, 1)
	testutil.AssertEqual(t, obs.statuses[0], "success")
}

func TestModel_StaleResultKeepsLoading(t *testing.T) {
	m := New(&fakeFinder{})

	m.searchInput.SetValue("12301")
	m, _ = update(t, m, keyEnter())
	firstSeq := m.state.Seq()
	m.searchInput.SetValue("12951")
	m, _ = update(t, m, keyEnter())

	m, _ = update(t, m, lookupResultMsg{lookup.Result{Seq: firstSeq, Details: minimalTrain(t)}})

	testutil.AssertTrue(t, m.state.Loading())
	testutil.AssertTrue(t, m.state.Details == nil)
}

func TestFetchTrain(t *testing.T) {
	finder := &fakeFinder{details: minimalTrain(t)}

	msg := fetchTrain(finder, lookup.Ticket{Seq: 7, Query: "12301"}, time.Second)()

	res, ok := msg.(lookupResultMsg)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, res.Seq, 7)
	testutil.AssertNil(t, res.Err)
	testutil.AssertEqual(t, res.Details.TrainNumber, "12301")
}

func TestFetchTrain_Server(t *testing.T) {
	server := testutil.NewStaticServer(200, testutil.SampleCoachTrainResponse)
	defer server.Close()

	client, err := api.NewClient(api.WithBaseURL(server.URL))
	testutil.AssertNil(t, err)

	msg := fetchTrain(client, lookup.Ticket{Seq: 1, Query: "12627"}, time.Second)()
	res := msg.(lookupResultMsg)

	testutil.AssertNil(t, res.Err)
	testutil.AssertEqual(t, res.Details.CoachesLabel(), "A1 (3A), B2 (SL)")
	testutil.AssertEqual(t, server.LastRequest().URL.EscapedPath(), "/train/12627")
}
