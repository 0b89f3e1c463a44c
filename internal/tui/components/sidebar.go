package components

import (
	"fmt"
	"strings"

	"streamdex/internal/engine"
	"streamdex/internal/tui/styles"
)

// SidebarSection identifies the filter group the cursor is in.
type SidebarSection int

const (
	SectionServices SidebarSection = iota
	SectionGenres
	SectionYears
	SectionRating
)

// SidebarEvent describes a filter mutation requested by the user. Exactly
// one field is set.
type SidebarEvent struct {
	ToggleService string
	ToggleGenre   string
	YearRange     *engine.Range
	RatingRange   *engine.Range
	ClearAll      bool
}

// Sidebar is the filter panel: streaming-service and genre toggles plus
// the year and tomatometer range sliders. It mirrors the engine's query
// state; mutations are reported as events, never applied locally.
type Sidebar struct {
	services []string
	genres   []string

	selectedServices map[string]bool
	selectedGenres   map[string]bool

	yearSlider   RangeSlider
	ratingSlider RangeSlider

	section SidebarSection
	cursor  int
	focused bool

	width  int
	height int
}

// NewSidebar creates the filter panel over the engine's initial state.
func NewSidebar(q engine.QueryState) Sidebar {
	return Sidebar{
		selectedServices: map[string]bool{},
		selectedGenres:   map[string]bool{},
		yearSlider:       NewRangeSlider("Year", q.Filters.Years, 1),
		ratingSlider:     NewRangeSlider("Rating", q.Filters.Rating, 5),
	}
}

// SetOptions installs the available filter values once the catalog loads.
func (s *Sidebar) SetOptions(services, genres []string) {
	s.services = services
	s.genres = genres
	if s.cursor >= s.sectionLen() {
		s.cursor = 0
	}
}

// SyncQuery mirrors the engine's query state into the panel.
func (s *Sidebar) SyncQuery(q engine.QueryState) {
	s.selectedServices = q.Filters.Services
	s.selectedGenres = q.Filters.Genres
	s.yearSlider.SetRange(q.Filters.Years)
	s.ratingSlider.SetRange(q.Filters.Rating)
}

// SetSize updates the component dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s Sidebar) IsFocused() bool {
	return s.focused
}

func (s Sidebar) sectionLen() int {
	switch s.section {
	case SectionServices:
		return len(s.services)
	case SectionGenres:
		return len(s.genres)
	default:
		return 1
	}
}

// HandleKey processes a key press, returning an event when the user
// requested a filter change.
func (s *Sidebar) HandleKey(key string) (handled bool, event *SidebarEvent) {
	switch key {
	case "j", "down":
		if s.cursor < s.sectionLen()-1 {
			s.cursor++
		} else if s.section < SectionRating {
			s.section++
			s.cursor = 0
		}
		return true, nil
	case "k", "up":
		if s.cursor > 0 {
			s.cursor--
		} else if s.section > SectionServices {
			s.section--
			s.cursor = s.sectionLen() - 1
			if s.cursor < 0 {
				s.cursor = 0
			}
		}
		return true, nil
	case " ", "enter":
		switch s.section {
		case SectionServices:
			if s.cursor < len(s.services) {
				return true, &SidebarEvent{ToggleService: s.services[s.cursor]}
			}
		case SectionGenres:
			if s.cursor < len(s.genres) {
				return true, &SidebarEvent{ToggleGenre: s.genres[s.cursor]}
			}
		case SectionYears:
			s.yearSlider.ToggleHandle()
		case SectionRating:
			s.ratingSlider.ToggleHandle()
		}
		return true, nil
	case "c":
		return true, &SidebarEvent{ClearAll: true}
	}

	// Slider sections own the horizontal keys.
	switch s.section {
	case SectionYears:
		if s.yearSlider.HandleKey(key) {
			if s.yearSlider.TakeDirty() {
				rng := s.yearSlider.Range()
				return true, &SidebarEvent{YearRange: &rng}
			}
			return true, nil
		}
	case SectionRating:
		if s.ratingSlider.HandleKey(key) {
			if s.ratingSlider.TakeDirty() {
				rng := s.ratingSlider.Range()
				return true, &SidebarEvent{RatingRange: &rng}
			}
			return true, nil
		}
	}

	return false, nil
}

// View renders the filter panel
func (s Sidebar) View() string {
	var b strings.Builder

	b.WriteString(s.renderHeader("Services", SectionServices))
	b.WriteString("\n")
	b.WriteString(s.renderToggles(s.services, s.selectedServices, SectionServices))
	b.WriteString("\n")

	b.WriteString(s.renderHeader("Genres", SectionGenres))
	b.WriteString("\n")
	b.WriteString(s.renderToggles(s.genres, s.selectedGenres, SectionGenres))
	b.WriteString("\n")

	b.WriteString(s.renderHeader("Year", SectionYears))
	b.WriteString("\n")
	b.WriteString("  " + s.yearSlider.View(s.sliderWidth(), s.focused && s.section == SectionYears))
	b.WriteString("\n\n")

	b.WriteString(s.renderHeader("Tomatometer", SectionRating))
	b.WriteString("\n")
	b.WriteString("  " + s.ratingSlider.View(s.sliderWidth(), s.focused && s.section == SectionRating))
	b.WriteString("\n")

	return b.String()
}

func (s Sidebar) sliderWidth() int {
	w := s.width - 22
	if w < 6 {
		w = 6
	}
	return w
}

func (s Sidebar) renderHeader(title string, section SidebarSection) string {
	if s.focused && s.section == section {
		return styles.AccentStyle.Bold(true).Render(title)
	}
	return styles.TitleStyle.Render(title)
}

func (s Sidebar) renderToggles(names []string, selected map[string]bool, section SidebarSection) string {
	if len(names) == 0 {
		return styles.DimStyle.Render("  (loading)") + "\n"
	}

	var b strings.Builder
	for i, name := range names {
		box := "[ ]"
		if selected[name] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, styles.Truncate(name, s.width-8))
		switch {
		case s.focused && s.section == section && i == s.cursor:
			b.WriteString(styles.SelectedItemStyle.Render(line))
		case selected[name]:
			b.WriteString(styles.FocusedItemStyle.Render(line))
		default:
			b.WriteString(styles.NormalItemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
