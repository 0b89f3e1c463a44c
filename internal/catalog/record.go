package catalog

import "fmt"

// StreamingOffer describes where a movie can be watched.
type StreamingOffer struct {
	Service string `json:"service"` // Display name, e.g. "Netflix"
	Region  string `json:"region"`  // Two-letter region code, e.g. "US"
	Link    string `json:"link"`    // Deep link to the title on the service
}

// Ratings holds the rating signals attached to a record.
// A zero value means "no rating available", not an actual score of zero.
type Ratings struct {
	TMDBPopularity float64 `json:"tmdb_popularity"`
	TMDBVote       float64 `json:"tmdb_vote"`
	RTTomatometer  int     `json:"rt_tomatometer"` // 0..100
	RTAudience     int     `json:"rt_audience"`    // 0..100
}

// Media holds optional artwork and trailer URLs.
type Media struct {
	Poster         string `json:"poster,omitempty"`
	Backdrop       string `json:"backdrop,omitempty"`
	TrailerYouTube string `json:"trailer_youtube,omitempty"`
}

// MovieRecord is one entry of the catalog document. Records are immutable
// once loaded; numeric fields with value 0 mean "unknown" at presentation
// time, never a real zero.
type MovieRecord struct {
	ID                  int              `json:"id"`
	Title               string           `json:"title"`
	OriginalTitle       string           `json:"original_title,omitempty"`
	OriginalLanguage    string           `json:"original_language,omitempty"`
	ReleaseDate         string           `json:"release_date,omitempty"`
	ReleaseYear         int              `json:"release_year"`
	Genres              []string         `json:"genres"`
	MPARating           string           `json:"mpa_rating,omitempty"`
	Overview            string           `json:"overview,omitempty"`
	RuntimeMin          int              `json:"runtime_min"`
	BudgetUSD           int64            `json:"budget_usd"`
	RevenueUSD          int64            `json:"revenue_usd"`
	Cast                []string         `json:"cast"`
	Keywords            []string         `json:"keywords"`
	Director            string           `json:"director,omitempty"`
	ProductionCompanies []string         `json:"production_companies"`
	Streaming           []StreamingOffer `json:"streaming"`
	Ratings             Ratings          `json:"ratings"`
	Media               Media            `json:"media"`
}

// HasTomatometer reports whether the record carries a Rotten Tomatoes score.
func (m MovieRecord) HasTomatometer() bool {
	return m.Ratings.RTTomatometer > 0
}

// ServiceNames returns the streaming service names in offer order.
func (m MovieRecord) ServiceNames() []string {
	names := make([]string, len(m.Streaming))
	for i, offer := range m.Streaming {
		names[i] = offer.Service
	}
	return names
}

// FormattedRuntime returns the runtime in a human-readable format,
// or an empty string when the runtime is unknown.
func (m MovieRecord) FormattedRuntime() string {
	if m.RuntimeMin <= 0 {
		return ""
	}
	h := m.RuntimeMin / 60
	mins := m.RuntimeMin % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// FormattedBudget returns the production budget in a human-readable format,
// or an empty string when the budget is unknown.
func (m MovieRecord) FormattedBudget() string {
	return formatUSD(m.BudgetUSD)
}

// FormattedRevenue returns the box-office revenue in a human-readable
// format, or an empty string when the revenue is unknown.
func (m MovieRecord) FormattedRevenue() string {
	return formatUSD(m.RevenueUSD)
}

func formatUSD(amount int64) string {
	if amount <= 0 {
		return ""
	}
	const (
		billion = 1_000_000_000
		million = 1_000_000
	)
	switch {
	case amount >= billion:
		return fmt.Sprintf("$%.1fB", float64(amount)/billion)
	case amount >= million:
		return fmt.Sprintf("$%.0fM", float64(amount)/million)
	default:
		return fmt.Sprintf("$%d", amount)
	}
}

// FormattedTomatometer returns the tomatometer as a percentage,
// or an empty string when no score is available.
func (m MovieRecord) FormattedTomatometer() string {
	if !m.HasTomatometer() {
		return ""
	}
	return fmt.Sprintf("%d%%", m.Ratings.RTTomatometer)
}
