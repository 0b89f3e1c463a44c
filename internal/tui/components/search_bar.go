package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"streamdex/internal/tui/styles"
)

// SearchBar wraps a text input for the free-text catalog search.
type SearchBar struct {
	input  textinput.Model
	active bool
}

// NewSearchBar creates a new search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "title, cast, director, keyword..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = styles.TitleStyle
	return SearchBar{input: ti}
}

// Activate focuses the input for typing.
func (s *SearchBar) Activate() tea.Cmd {
	s.active = true
	return s.input.Focus()
}

// Deactivate blurs the input, keeping its text.
func (s *SearchBar) Deactivate() {
	s.active = false
	s.input.Blur()
}

// IsActive reports whether the bar is capturing keystrokes.
func (s SearchBar) IsActive() bool {
	return s.active
}

// Value returns the current query text.
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the query text, e.g. from restored preferences.
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
}

// Clear empties the query text.
func (s *SearchBar) Clear() {
	s.input.SetValue("")
}

// Update forwards messages to the underlying text input.
func (s *SearchBar) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// View renders the search bar
func (s SearchBar) View() string {
	if !s.active && s.input.Value() == "" {
		return styles.DimStyle.Render("/ search")
	}
	return s.input.View()
}
