package engine

// Grid geometry. Page size adapts to the viewport width so the grid always
// shows gridRows complete rows.
const (
	gridRows   = 5
	minColumns = 3
	maxColumns = 8

	// Width thresholds for column derivation, in viewport units.
	narrowViewport  = 768
	narrowCellWidth = 150
	wideInset       = 320
	wideCellWidth   = 160
)

// Columns derives the grid column count from the viewport width.
func Columns(width int) int {
	var cols int
	if width < narrowViewport {
		cols = width / narrowCellWidth
	} else {
		cols = (width - wideInset) / wideCellWidth
	}
	if cols < minColumns {
		cols = minColumns
	}
	if cols > maxColumns {
		cols = maxColumns
	}
	return cols
}

// PageSizeForWidth derives the page size from the viewport width.
func PageSizeForWidth(width int) int {
	return gridRows * Columns(width)
}

// TotalPages returns the number of pages a view of viewLen records spans.
// An empty view has zero pages.
func TotalPages(viewLen, pageSize int) int {
	if viewLen <= 0 || pageSize <= 0 {
		return 0
	}
	return (viewLen + pageSize - 1) / pageSize
}

// PageForIndex returns the 1-based page a record index lands on under the
// given page size. Used on resize to keep the record at the top of the old
// page visible instead of snapping back to page 1.
func PageForIndex(index, pageSize int) int {
	if index <= 0 || pageSize <= 0 {
		return 1
	}
	return index/pageSize + 1
}

// PageBounds returns the half-open [start, end) slice bounds for a page,
// clipped to the view. Out-of-range pages yield an empty interval rather
// than an error.
func PageBounds(viewLen, pageSize, page int) (start, end int) {
	if viewLen <= 0 || pageSize <= 0 || page < 1 {
		return 0, 0
	}
	start = (page - 1) * pageSize
	if start >= viewLen {
		return viewLen, viewLen
	}
	end = start + pageSize
	if end > viewLen {
		end = viewLen
	}
	return start, end
}
