package engine

import (
	"sort"
	"strings"

	"streamdex/internal/catalog"
)

// Evaluate derives the ordered view for a query state: search, then the
// narrowing filters, then a stable sort. It is a pure function of its
// inputs; the same records and state always produce the same output, and
// the input slice is never mutated.
func Evaluate(records []catalog.MovieRecord, q QueryState) []catalog.MovieRecord {
	view := make([]catalog.MovieRecord, 0, len(records))

	query := strings.ToLower(strings.TrimSpace(q.SearchQuery))
	filterServices := activeSet(q.Filters.Services)
	filterGenres := activeSet(q.Filters.Genres)

	for _, rec := range records {
		if query != "" && !matchesSearch(rec, query) {
			continue
		}
		if filterServices && !matchesAnyService(rec, q.Filters.Services) {
			continue
		}
		if filterGenres && !matchesAnyGenre(rec, q.Filters.Genres) {
			continue
		}
		if !q.Filters.Years.Contains(rec.ReleaseYear) {
			continue
		}
		// Records without a tomatometer score carry 0 and fall out of
		// any selection whose lower bound exceeds 0. Intentional.
		if !q.Filters.Rating.Contains(rec.Ratings.RTTomatometer) {
			continue
		}
		view = append(view, rec)
	}

	sortView(view, q.Sort)
	return view
}

// matchesSearch reports whether the record matches a lowercased query by
// case-insensitive substring against title, cast, director or keywords.
// An absent director simply never matches on that field.
func matchesSearch(rec catalog.MovieRecord, query string) bool {
	if strings.Contains(strings.ToLower(rec.Title), query) {
		return true
	}
	for _, name := range rec.Cast {
		if strings.Contains(strings.ToLower(name), query) {
			return true
		}
	}
	if rec.Director != "" && strings.Contains(strings.ToLower(rec.Director), query) {
		return true
	}
	for _, kw := range rec.Keywords {
		if strings.Contains(strings.ToLower(kw), query) {
			return true
		}
	}
	return false
}

func matchesAnyService(rec catalog.MovieRecord, services map[string]bool) bool {
	for _, offer := range rec.Streaming {
		if services[offer.Service] {
			return true
		}
	}
	return false
}

func matchesAnyGenre(rec catalog.MovieRecord, genres map[string]bool) bool {
	for _, g := range rec.Genres {
		if genres[g] {
			return true
		}
	}
	return false
}

// sortView orders the view by the single sort key. The sort is stable, so
// records with equal keys keep their post-filter relative order and
// re-evaluations stay reproducible.
func sortView(view []catalog.MovieRecord, s Sort) {
	less := lessFunc(s.Key)
	if s.Order == SortDesc {
		asc := less
		less = func(a, b catalog.MovieRecord) bool { return asc(b, a) }
	}
	sort.SliceStable(view, func(i, j int) bool {
		return less(view[i], view[j])
	})
}

func lessFunc(key SortKey) func(a, b catalog.MovieRecord) bool {
	switch key {
	case SortPopularity:
		return func(a, b catalog.MovieRecord) bool {
			return a.Ratings.TMDBPopularity < b.Ratings.TMDBPopularity
		}
	case SortRating:
		return func(a, b catalog.MovieRecord) bool {
			return a.Ratings.RTTomatometer < b.Ratings.RTTomatometer
		}
	case SortYear:
		return func(a, b catalog.MovieRecord) bool {
			return a.ReleaseYear < b.ReleaseYear
		}
	default:
		return func(a, b catalog.MovieRecord) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	}
}
