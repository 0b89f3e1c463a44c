package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"streamdex/internal/catalog"
	"streamdex/internal/engine"
)

func browsingModel(t *testing.T) Model {
	t.Helper()
	eng := engine.New(nil, nil)
	gen := eng.NextLoadGeneration()
	records := []catalog.MovieRecord{
		{ID: 1, Title: "The Matrix", ReleaseYear: 1999,
			Streaming: []catalog.StreamingOffer{{Service: "Max", Region: "US"}},
			Ratings:   catalog.Ratings{TMDBPopularity: 80, RTTomatometer: 88}},
	}
	if !eng.ApplyCatalog(records, gen) {
		t.Fatal("catalog apply rejected")
	}
	m := NewModel(eng, nil, 8, nil)
	m.State = StateBrowsing
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_QClosesDetailWithoutQuitting(t *testing.T) {
	m := browsingModel(t)
	m.showDetail = true

	updated, cmd := m.handleKey(keyRune('q'))
	if isQuit(cmd) {
		t.Fatal("q with the detail pane open must not quit the application")
	}
	if updated.(Model).showDetail {
		t.Fatal("q should close the detail pane")
	}
}

func TestModel_QQuitsWhenNoOverlayIsOpen(t *testing.T) {
	m := browsingModel(t)

	_, cmd := m.handleKey(keyRune('q'))
	if !isQuit(cmd) {
		t.Fatal("q in the grid view should quit")
	}
}

func TestModel_CtrlCAlwaysQuits(t *testing.T) {
	m := browsingModel(t)
	m.showDetail = true

	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) {
		t.Fatal("ctrl+c must quit even with the detail pane open")
	}
}

func TestModel_QTypesIntoActiveSearch(t *testing.T) {
	m := browsingModel(t)
	m.search.Activate()

	updated, cmd := m.handleKey(keyRune('q'))
	if isQuit(cmd) {
		t.Fatal("q while searching must not quit")
	}
	if got := updated.(Model).search.Value(); got != "q" {
		t.Fatalf("search value = %q, want the typed rune", got)
	}
}
