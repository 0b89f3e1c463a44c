package engine

import "time"

// Rating filter domain (Rotten Tomatoes tomatometer percentage).
const (
	RatingMin = 0
	RatingMax = 100
)

// Earliest release year offered by the year filter.
const YearMin = 1900

// SortKey selects the field the view is ordered by.
type SortKey int

const (
	SortTitle SortKey = iota
	SortPopularity
	SortRating
	SortYear
)

// String returns the display name for the sort key.
func (k SortKey) String() string {
	switch k {
	case SortTitle:
		return "Title"
	case SortPopularity:
		return "Popularity"
	case SortRating:
		return "Rating"
	case SortYear:
		return "Release Year"
	default:
		return "Unknown"
	}
}

// SortOrder selects the sort direction.
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// String returns the display name for the sort order.
func (o SortOrder) String() string {
	if o == SortDesc {
		return "Descending"
	}
	return "Ascending"
}

// Sort is the user's sort choice.
type Sort struct {
	Key   SortKey
	Order SortOrder
}

// Range models a dual-handle bounded selection: two values inside a fixed
// domain with the invariant Low <= High. Every mutation clamps the moved
// handle against the domain and against the other handle, so the invariant
// holds regardless of input device.
type Range struct {
	Low, High int
	Min, Max  int
}

// NewRange creates a range spanning its full domain.
func NewRange(min, max int) Range {
	if max < min {
		max = min
	}
	return Range{Low: min, High: max, Min: min, Max: max}
}

// SetLow moves the lower handle, clamped to [Min, High].
func (r *Range) SetLow(v int) {
	if v < r.Min {
		v = r.Min
	}
	if v > r.High {
		v = r.High
	}
	r.Low = v
}

// SetHigh moves the upper handle, clamped to [Low, Max].
func (r *Range) SetHigh(v int) {
	if v > r.Max {
		v = r.Max
	}
	if v < r.Low {
		v = r.Low
	}
	r.High = v
}

// Set moves both handles at once, normalizing and clamping to the domain.
func (r *Range) Set(low, high int) {
	if high < low {
		low, high = high, low
	}
	r.Low, r.High = r.Min, r.Max
	r.SetHigh(high)
	r.SetLow(low)
}

// Contains reports whether v falls inside the selection, inclusive.
func (r Range) Contains(v int) bool {
	return v >= r.Low && v <= r.High
}

// IsFull reports whether the selection spans the whole domain.
func (r Range) IsFull() bool {
	return r.Low == r.Min && r.High == r.Max
}

// Filters is the narrowing part of the query state. Empty service or genre
// sets mean "no filtering on that attribute"; the two ranges always apply.
type Filters struct {
	Services map[string]bool
	Genres   map[string]bool
	Years    Range
	Rating   Range
}

// QueryState is the complete user-chosen query: filters, free-text search
// and sort order. Pagination is deliberately not part of it.
type QueryState struct {
	Filters     Filters
	SearchQuery string
	Sort        Sort
}

// DefaultQueryState returns the engine's initial query state: no service or
// genre filters, full year and rating domains, empty search, and the most
// popular titles first.
func DefaultQueryState() QueryState {
	return QueryState{
		Filters: Filters{
			Services: make(map[string]bool),
			Genres:   make(map[string]bool),
			Years:    NewRange(YearMin, time.Now().Year()),
			Rating:   NewRange(RatingMin, RatingMax),
		},
		Sort: Sort{Key: SortPopularity, Order: SortDesc},
	}
}

// Clone returns a deep copy of the query state.
func (q QueryState) Clone() QueryState {
	out := q
	out.Filters.Services = make(map[string]bool, len(q.Filters.Services))
	for k, v := range q.Filters.Services {
		out.Filters.Services[k] = v
	}
	out.Filters.Genres = make(map[string]bool, len(q.Filters.Genres))
	for k, v := range q.Filters.Genres {
		out.Filters.Genres[k] = v
	}
	return out
}

// activeSet reports whether any entry of a filter set is enabled.
func activeSet(set map[string]bool) bool {
	for _, on := range set {
		if on {
			return true
		}
	}
	return false
}
