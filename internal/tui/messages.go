package tui

import "streamdex/internal/catalog"

// Message types for the TUI

// CatalogLoadedMsg signals that the catalog document has been loaded
type CatalogLoadedMsg struct {
	Records    []catalog.MovieRecord
	Generation int
}

// CatalogLoadFailedMsg signals that loading gave up after retries
type CatalogLoadFailedMsg struct {
	Err        error
	Generation int
}
