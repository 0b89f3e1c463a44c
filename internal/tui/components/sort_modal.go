package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"streamdex/internal/engine"
	"streamdex/internal/tui/styles"
)

// DefaultDirection returns the default sort direction for a key.
func DefaultDirection(key engine.SortKey) engine.SortOrder {
	if key == engine.SortTitle {
		return engine.SortAsc // A-Z
	}
	return engine.SortDesc // best/newest first
}

// SortOptions returns the sort keys offered by the modal, in display order.
func SortOptions() []engine.SortKey {
	return []engine.SortKey{engine.SortPopularity, engine.SortTitle, engine.SortRating, engine.SortYear}
}

// SortModal is a small popup for choosing sort order
type SortModal struct {
	visible   bool
	options   []engine.SortKey
	cursor    int
	activeKey engine.SortKey
	activeDir engine.SortOrder
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{}
}

// Show displays the modal with the current sort state
func (m *SortModal) Show(active engine.Sort) {
	m.visible = true
	m.options = SortOptions()
	m.activeKey = active.Key
	m.activeDir = active.Order
	// Position cursor on the active key
	m.cursor = 0
	for i, opt := range m.options {
		if opt == active.Key {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice.
func (m *SortModal) HandleKey(key string) (handled bool, selection *engine.Sort) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
		return true, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return true, nil
	case "enter":
		chosen := m.options[m.cursor]
		dir := DefaultDirection(chosen)
		if chosen == m.activeKey {
			// Toggle direction
			if m.activeDir == engine.SortAsc {
				dir = engine.SortDesc
			} else {
				dir = engine.SortAsc
			}
		}
		m.visible = false
		return true, &engine.Sort{Key: chosen, Order: dir}
	case "esc", "s":
		m.visible = false
		return true, nil
	}

	return true, nil // consume all keys when visible
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	var lines []string
	for i, opt := range m.options {
		selected := i == m.cursor
		isActive := opt == m.activeKey

		prefix := "  "
		if isActive {
			prefix = "✓ "
		}

		var suffix string
		if isActive {
			if m.activeDir == engine.SortAsc {
				suffix = " ↑"
			} else {
				suffix = " ↓"
			}
		}

		text := prefix + opt.String() + suffix

		switch {
		case selected:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.White).
				Background(styles.SlateLight).
				Render(styles.Pad(text, 20)))
		case isActive:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.TomatoRed).
				Render(styles.Pad(text, 20)))
		default:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(styles.LightGray).
				Render(styles.Pad(text, 20)))
		}
	}

	content := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.TomatoRed).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Sort by") + "\n" + content)
}
