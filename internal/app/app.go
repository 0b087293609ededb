// Package app wires configuration, stores, the willhaben client, and
// the TUI together.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devskale/willhaben-agent/internal/config"
	"github.com/devskale/willhaben-agent/internal/fetch"
	"github.com/devskale/willhaben-agent/internal/store"
	"github.com/devskale/willhaben-agent/internal/ui"
	"github.com/devskale/willhaben-agent/internal/wh"
)

// Options configure the application.
type Options struct {
	ConfigPath string // empty uses ~/.config/willhaben/config.toml
	DataDir    string // empty uses ~/.local/share/willhaben
	UseBrowser bool   // force the headless-browser fetch fallback on
	Debug      bool   // write a debug log next to the data files
}

// Run boots the interactive TUI until the context is cancelled or the
// user quits.
func Run(ctx context.Context, opts Options) error {
	cfg := config.Load(opts.ConfigPath)
	if opts.UseBrowser {
		cfg.UseBrowser = true
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = store.DefaultDir()
	}

	if opts.Debug {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		f, err := tea.LogToFile(filepath.Join(dataDir, "debug.log"), "debug")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer func() { _ = f.Close() }()
	}

	stars, err := store.OpenStars(dataDir)
	if err != nil {
		return fmt.Errorf("open star store: %w", err)
	}
	history, err := store.OpenHistory(dataDir)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}

	client := wh.NewClient(fetch.New(fetch.Options{
		CookieHeader: cfg.CookieHeader,
		UseBrowser:   cfg.UseBrowser,
	}))

	return ui.Run(ui.Options{
		Context:    ctx,
		Backend:    client,
		Stars:      stars,
		History:    history,
		Config:     cfg,
		ConfigPath: opts.ConfigPath,
	})
}
