package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"streamdex/internal/catalog"
)

// Command factories for async operations

// loadTimeout bounds one logical load including its retry backoff waits.
const loadTimeout = 2 * time.Minute

// LoadCatalogCmd fetches the catalog document. The generation travels with
// the result so the engine can discard completions from superseded loads.
func LoadCatalogCmd(loader *catalog.Loader, generation int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		records, err := loader.Load(ctx)
		if err != nil {
			return CatalogLoadFailedMsg{Err: err, Generation: generation}
		}
		return CatalogLoadedMsg{Records: records, Generation: generation}
	}
}
