package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"shoplist/internal/journal"
	"shoplist/internal/store"
)

type Options struct {
	Store   *store.Store
	Journal *journal.Journal
	Logger  *slog.Logger
	// Glyphs is "unicode" or "ascii".
	Glyphs string
}

// Run starts the interactive list and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	if gs, ok := parseGlyphSet(opts.Glyphs); ok {
		setGlyphs(gs)
	}
	if opts.Store == nil {
		opts.Store = store.Default()
	}
	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
