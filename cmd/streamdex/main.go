package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"streamdex/internal/catalog"
	"streamdex/internal/config"
	"streamdex/internal/engine"
	"streamdex/internal/log"
	"streamdex/internal/store"
	"streamdex/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("streamdex %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting streamdex", "version", Version)

	prefs, err := store.Open(cfg.Storage.Path, logger)
	if err != nil {
		// Preferences are best-effort; run with a memory-only store.
		logger.Warn("preference storage unavailable", "error", err)
		prefs, _ = store.Open("", logger)
	}
	defer prefs.Close()

	loader := catalog.NewLoader(cfg.Catalog.URL, logger)
	if cfg.Catalog.TimeoutSec > 0 {
		loader.SetHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Catalog.TimeoutSec) * time.Second,
		})
	}

	eng := engine.New(prefs, logger)

	// Seed the page size before the first render; Bubble Tea delivers
	// the real window size right after startup.
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		eng.Resize(w * cfg.UI.CellPx)
	}

	model := tui.NewModel(eng, loader, cfg.UI.CellPx, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
