package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"streamdex/internal/engine"
	"streamdex/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	switch m.State {
	case StateLoading:
		return m.loadingView()
	case StateLoadFailed:
		return m.loadFailedView()
	default:
		return m.browsingView()
	}
}

func (m Model) loadingView() string {
	msg := fmt.Sprintf("%s Loading catalog...", m.spin.View())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

func (m Model) loadFailedView() string {
	var b strings.Builder
	b.WriteString(styles.ErrorStyle.Render("Could not load the movie catalog"))
	b.WriteString("\n\n")
	if m.loadErr != nil {
		b.WriteString(styles.DimStyle.Render(m.loadErr.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(styles.HelpKeyStyle.Render("r") + styles.HelpDescStyle.Render(" retry") + "  ")
	b.WriteString(styles.HelpKeyStyle.Render("q") + styles.HelpDescStyle.Render(" quit"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

func (m Model) browsingView() string {
	header := m.headerView()
	sidebar := styles.SidebarStyle.Width(SidebarWidth).Render(m.sidebar.View())
	grid := styles.BrowserStyle.Render(m.grid.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, grid)
	footer := m.footerView()

	screen := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)

	if m.sortModal.IsVisible() {
		return m.overlay(screen, m.sortModal.View())
	}
	if m.showDetail {
		return m.overlay(screen, m.detailView())
	}
	return screen
}

func (m Model) headerView() string {
	title := styles.AccentStyle.Bold(true).Render("streamdex")
	sort := m.engine.Query().Sort
	sortLabel := styles.DimStyle.Render(fmt.Sprintf("sort: %s %s", sort.Key, arrow(sort)))

	left := title + "  " + m.search.View()
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(sortLabel) - 2
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(left + strings.Repeat(" ", gap) + sortLabel)
}

func (m Model) footerView() string {
	status := m.grid.StatusLine()
	help := styles.HelpDescStyle.Render("/ search · f filters · s sort · n/p page · enter details · q quit")
	gap := m.width - lipgloss.Width(status) - lipgloss.Width(help) - 2
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(status + strings.Repeat(" ", gap) + help)
}

// detailView renders the full record for the selected movie.
func (m Model) detailView() string {
	rec := m.detail
	width := m.width / 2
	if width < 40 {
		width = 40
	}
	inner := width - 6

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(styles.Truncate(rec.Title, inner)))
	b.WriteString("\n")

	meta := fmt.Sprintf("%d", rec.ReleaseYear)
	if rt := rec.FormattedRuntime(); rt != "" {
		meta += " · " + rt
	}
	if rec.MPARating != "" {
		meta += " · " + rec.MPARating
	}
	b.WriteString(styles.SubtitleStyle.Render(meta))
	b.WriteString("\n\n")

	if score := rec.FormattedTomatometer(); score != "" {
		b.WriteString(styles.RatingStyle.Render("Tomatometer " + score))
		if rec.Ratings.RTAudience > 0 {
			b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("  ·  Audience %d%%", rec.Ratings.RTAudience)))
		}
		b.WriteString("\n\n")
	}

	if rec.Director != "" {
		b.WriteString(styles.TitleStyle.Render("Director  "))
		b.WriteString(styles.SubtitleStyle.Render(rec.Director))
		b.WriteString("\n")
	}
	if len(rec.Cast) > 0 {
		b.WriteString(styles.TitleStyle.Render("Cast      "))
		b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(strings.Join(rec.Cast, ", "), inner-10)))
		b.WriteString("\n")
	}
	if len(rec.Genres) > 0 {
		b.WriteString(styles.TitleStyle.Render("Genres    "))
		b.WriteString(styles.SubtitleStyle.Render(strings.Join(rec.Genres, ", ")))
		b.WriteString("\n")
	}
	if budget := rec.FormattedBudget(); budget != "" {
		b.WriteString(styles.TitleStyle.Render("Budget    "))
		b.WriteString(styles.SubtitleStyle.Render(budget))
		if revenue := rec.FormattedRevenue(); revenue != "" {
			b.WriteString(styles.SubtitleStyle.Render("  ·  Revenue " + revenue))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if rec.Overview != "" {
		b.WriteString(styles.SubtitleStyle.Width(inner).Render(rec.Overview))
		b.WriteString("\n\n")
	}

	if len(rec.Streaming) > 0 {
		b.WriteString(styles.TitleStyle.Render("Watch on"))
		b.WriteString("\n")
		for _, offer := range rec.Streaming {
			b.WriteString(styles.AccentStyle.Render("  " + offer.Service))
			if offer.Region != "" {
				b.WriteString(styles.DimStyle.Render(" (" + offer.Region + ")"))
			}
			b.WriteString("\n")
		}
	}

	return styles.ModalStyle.Width(width).Render(b.String())
}

// overlay centers a modal on top of the screen. Bubble Tea has no real
// z-ordering, so the modal simply replaces the screen content at its
// position.
func (m Model) overlay(screen, modal string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func arrow(s engine.Sort) string {
	if s.Order == engine.SortAsc {
		return "↑"
	}
	return "↓"
}
