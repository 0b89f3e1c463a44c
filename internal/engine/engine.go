package engine

import (
	"log/slog"

	"streamdex/internal/catalog"
)

// Preferences is the slice of user-chosen query state the engine mirrors
// to durable storage. Saves are best-effort; Restore returns false when
// nothing usable is stored.
type Preferences interface {
	SaveQueryState(QueryState)
	RestoreQueryState() (QueryState, bool)
}

// Engine owns the catalog index, the query state and the pagination state
// and exposes every mutation as an explicit operation. It is owned by a
// single goroutine (the UI loop); loads complete elsewhere and are handed
// in through ApplyCatalog with a generation guard so a stale completion
// can never overwrite a newer record set.
type Engine struct {
	index *catalog.Index
	query QueryState

	pageSize int
	page     int
	width    int

	generation int // last load generation issued
	applied    int // generation of the record set currently applied

	view      []catalog.MovieRecord
	viewValid bool

	prefs  Preferences
	logger *slog.Logger
}

// New creates an engine over an empty catalog. When prefs is non-nil the
// initial query state is seeded from storage before the first evaluation.
func New(prefs Preferences, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		query:    DefaultQueryState(),
		index:    catalog.NewIndex(nil),
		pageSize: gridRows * minColumns,
		page:     1,
		prefs:    prefs,
		logger:   logger,
	}
	if prefs != nil {
		if restored, ok := prefs.RestoreQueryState(); ok {
			e.query = restored
			e.logger.Debug("restored query state from preferences")
		}
	}
	return e
}

// NextLoadGeneration reserves a generation for a load about to start.
// Only the completion carrying the newest reserved generation is applied.
func (e *Engine) NextLoadGeneration() int {
	e.generation++
	return e.generation
}

// ApplyCatalog installs a fully-parsed record set. Completions from
// superseded loads are discarded; the index is never partially populated.
func (e *Engine) ApplyCatalog(records []catalog.MovieRecord, generation int) bool {
	if generation < e.generation || generation <= e.applied {
		e.logger.Debug("discarding stale catalog load", "generation", generation, "latest", e.generation)
		return false
	}
	e.applied = generation
	e.index = catalog.NewIndex(records)
	e.page = 1
	e.invalidate()
	if e.width > 0 {
		e.Resize(e.width)
	}
	return true
}

// Index returns the current catalog index.
func (e *Engine) Index() *catalog.Index {
	return e.index
}

// Query returns a copy of the current query state.
func (e *Engine) Query() QueryState {
	return e.query.Clone()
}

// SetSearch replaces the free-text search query.
func (e *Engine) SetSearch(query string) {
	if e.query.SearchQuery == query {
		return
	}
	e.query.SearchQuery = query
	e.queryChanged()
}

// ToggleService flips a streaming-service filter on or off.
func (e *Engine) ToggleService(name string) {
	toggle(e.query.Filters.Services, name)
	e.queryChanged()
}

// ToggleGenre flips a genre filter on or off.
func (e *Engine) ToggleGenre(name string) {
	toggle(e.query.Filters.Genres, name)
	e.queryChanged()
}

// SetYearRange moves both year handles, normalized and clamped.
func (e *Engine) SetYearRange(low, high int) {
	e.query.Filters.Years.Set(low, high)
	e.queryChanged()
}

// SetRatingRange moves both tomatometer handles, normalized and clamped.
func (e *Engine) SetRatingRange(low, high int) {
	e.query.Filters.Rating.Set(low, high)
	e.queryChanged()
}

// SetYearLow moves the lower year handle only.
func (e *Engine) SetYearLow(v int) {
	e.query.Filters.Years.SetLow(v)
	e.queryChanged()
}

// SetYearHigh moves the upper year handle only.
func (e *Engine) SetYearHigh(v int) {
	e.query.Filters.Years.SetHigh(v)
	e.queryChanged()
}

// SetRatingLow moves the lower tomatometer handle only.
func (e *Engine) SetRatingLow(v int) {
	e.query.Filters.Rating.SetLow(v)
	e.queryChanged()
}

// SetRatingHigh moves the upper tomatometer handle only.
func (e *Engine) SetRatingHigh(v int) {
	e.query.Filters.Rating.SetHigh(v)
	e.queryChanged()
}

// ClearFilters resets filters and search to their defaults, keeping sort.
func (e *Engine) ClearFilters() {
	sort := e.query.Sort
	e.query = DefaultQueryState()
	e.query.Sort = sort
	e.queryChanged()
}

// SetSort changes the sort order. Unlike filter and search mutations it
// does not reset the current page.
func (e *Engine) SetSort(s Sort) {
	if e.query.Sort == s {
		return
	}
	e.query.Sort = s
	e.invalidate()
	e.persist()
}

// Resize recomputes the page size from the viewport width while keeping
// the record at the top of the current page visible. When the whole view
// fits one computed page the page size grows to cover it so no partial
// trailing page is shown.
func (e *Engine) Resize(width int) {
	if width <= 0 {
		return
	}
	e.width = width
	computed := PageSizeForWidth(width)
	viewLen := len(e.View())

	if viewLen <= computed {
		e.pageSize = max(viewLen, computed)
		e.page = 1
		return
	}

	oldFirst := (e.page - 1) * e.pageSize
	if oldFirst >= viewLen {
		oldFirst = viewLen - 1
	}
	e.pageSize = computed
	e.page = PageForIndex(oldFirst, computed)
}

// View returns the ordered view for the current query state, memoized
// until the catalog or the query changes.
func (e *Engine) View() []catalog.MovieRecord {
	if !e.viewValid {
		e.view = Evaluate(e.index.All(), e.query)
		e.viewValid = true
	}
	return e.view
}

// PageItems returns the slice of the view on the current page.
func (e *Engine) PageItems() []catalog.MovieRecord {
	view := e.View()
	start, end := PageBounds(len(view), e.pageSize, e.page)
	return view[start:end]
}

// Columns returns the grid column count for the current viewport width.
func (e *Engine) Columns() int {
	if e.width <= 0 {
		return minColumns
	}
	return Columns(e.width)
}

// CurrentPage returns the 1-based current page.
func (e *Engine) CurrentPage() int {
	return e.page
}

// PageSize returns the effective page size.
func (e *Engine) PageSize() int {
	return e.pageSize
}

// TotalPages returns the page count of the current view.
func (e *Engine) TotalPages() int {
	return TotalPages(len(e.View()), e.pageSize)
}

// NextPage advances one page, clamped to the last page.
func (e *Engine) NextPage() {
	e.GoToPage(e.page + 1)
}

// PrevPage goes back one page, clamped to the first page.
func (e *Engine) PrevPage() {
	e.GoToPage(e.page - 1)
}

// GoToPage jumps to a page, clamped into the valid page interval.
func (e *Engine) GoToPage(page int) {
	total := e.TotalPages()
	if total == 0 {
		e.page = 1
		return
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	e.page = page
}

// queryChanged is the common path for filter and search mutations: the
// view is re-derived, the page resets to 1 and the new state is mirrored
// to preferences.
func (e *Engine) queryChanged() {
	e.page = 1
	e.invalidate()
	e.persist()
}

func (e *Engine) invalidate() {
	e.view = nil
	e.viewValid = false
}

func (e *Engine) persist() {
	if e.prefs == nil {
		return
	}
	e.prefs.SaveQueryState(e.query.Clone())
}

func toggle(set map[string]bool, name string) {
	if set[name] {
		delete(set, name)
	} else {
		set[name] = true
	}
}
