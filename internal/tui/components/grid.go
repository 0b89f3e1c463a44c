package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"streamdex/internal/catalog"
	"streamdex/internal/tui/styles"
)

// GridEvent asks the parent to do something the grid cannot do itself.
type GridEvent int

const (
	GridNone GridEvent = iota
	GridNextPage
	GridPrevPage
	GridSelect
)

// Grid renders one page of the current view as a grid of movie cards.
// Pagination itself lives in the engine; the grid only displays the page
// it is given and reports when the cursor runs off its edge.
type Grid struct {
	items   []catalog.MovieRecord
	columns int
	cursor  int

	page       int
	totalPages int
	totalItems int

	width   int
	height  int
	focused bool
}

// NewGrid creates a new grid component
func NewGrid() Grid {
	return Grid{columns: 1}
}

// SetPage replaces the grid content with a new page of records.
// keepCursor preserves the cursor position when it still fits, which the
// parent uses for page flips landing mid-page.
func (g *Grid) SetPage(items []catalog.MovieRecord, columns, page, totalPages, totalItems int, keepCursor bool) {
	g.items = items
	if columns < 1 {
		columns = 1
	}
	g.columns = columns
	g.page = page
	g.totalPages = totalPages
	g.totalItems = totalItems
	if !keepCursor || g.cursor >= len(items) {
		g.cursor = 0
	}
	if len(items) == 0 {
		g.cursor = 0
	}
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// IsFocused returns the focus state
func (g Grid) IsFocused() bool {
	return g.focused
}

// Cursor returns the cursor index within the page.
func (g Grid) Cursor() int {
	return g.cursor
}

// SetCursor positions the cursor, clamped to the page.
func (g *Grid) SetCursor(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos >= len(g.items) {
		pos = len(g.items) - 1
	}
	if pos < 0 {
		pos = 0
	}
	g.cursor = pos
}

// Selected returns the record under the cursor.
func (g Grid) Selected() (catalog.MovieRecord, bool) {
	if g.cursor < 0 || g.cursor >= len(g.items) {
		return catalog.MovieRecord{}, false
	}
	return g.items[g.cursor], true
}

// HandleKey processes a key press, returning an event for moves the grid
// cannot satisfy on the current page.
func (g *Grid) HandleKey(key string) (handled bool, event GridEvent) {
	if len(g.items) == 0 {
		return false, GridNone
	}

	switch key {
	case "h", "left":
		if g.cursor%g.columns == 0 {
			return true, GridPrevPage
		}
		g.cursor--
		return true, GridNone
	case "l", "right":
		if g.cursor%g.columns == g.columns-1 || g.cursor == len(g.items)-1 {
			return true, GridNextPage
		}
		g.cursor++
		return true, GridNone
	case "k", "up":
		if g.cursor-g.columns >= 0 {
			g.cursor -= g.columns
		}
		return true, GridNone
	case "j", "down":
		if g.cursor+g.columns < len(g.items) {
			g.cursor += g.columns
		} else if g.cursor < len(g.items)-1 {
			g.cursor = len(g.items) - 1
		}
		return true, GridNone
	case "home":
		g.cursor = 0
		return true, GridNone
	case "end":
		g.cursor = len(g.items) - 1
		return true, GridNone
	case "enter":
		return true, GridSelect
	}
	return false, GridNone
}

// View renders the grid page
func (g Grid) View() string {
	if len(g.items) == 0 {
		empty := styles.DimStyle.Render("No movies match the current filters")
		return lipgloss.Place(g.width, g.height, lipgloss.Center, lipgloss.Center, empty)
	}

	cardWidth := g.width/g.columns - 2
	if cardWidth < 12 {
		cardWidth = 12
	}

	var rows []string
	for start := 0; start < len(g.items); start += g.columns {
		end := start + g.columns
		if end > len(g.items) {
			end = len(g.items)
		}
		var cards []string
		for i := start; i < end; i++ {
			cards = append(cards, g.renderCard(g.items[i], i == g.cursor, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return strings.Join(rows, "\n")
}

// renderCard renders a single movie card: title, year/runtime, rating and
// where to stream.
func (g Grid) renderCard(rec catalog.MovieRecord, selected bool, width int) string {
	inner := width - 4 // border + padding
	if inner < 8 {
		inner = 8
	}

	title := styles.Truncate(rec.Title, inner)
	if selected && g.focused {
		title = styles.FocusedItemStyle.UnsetPadding().Render(title)
	} else {
		title = styles.TitleStyle.Render(title)
	}

	meta := fmt.Sprintf("%d", rec.ReleaseYear)
	if rt := rec.FormattedRuntime(); rt != "" {
		meta += " · " + rt
	}
	line2 := styles.SubtitleStyle.Render(styles.Truncate(meta, inner))

	var line3 string
	if score := rec.FormattedTomatometer(); score != "" {
		line3 = styles.RatingStyle.Render("🍅 " + score)
	} else {
		line3 = styles.DimStyle.Render("no score")
	}

	services := strings.Join(rec.ServiceNames(), ", ")
	line4 := styles.DimStyle.Render(styles.Truncate(services, inner))

	content := strings.Join([]string{title, line2, line3, line4}, "\n")

	border := styles.InactiveBorder
	if selected && g.focused {
		border = styles.ActiveBorder
	}
	return border.Width(width).Padding(0, 1).Render(content)
}

// StatusLine renders the pagination summary shown under the grid.
func (g Grid) StatusLine() string {
	if g.totalItems == 0 {
		return styles.DimStyle.Render("0 movies")
	}
	return styles.SubtitleStyle.Render(
		fmt.Sprintf("%d movies · page %d/%d", g.totalItems, g.page, g.totalPages))
}
