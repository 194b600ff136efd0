package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/senti/internal/config"
	"github.com/f3rmion/senti/internal/tui/views"
	"github.com/rs/zerolog"
)

// Options configures Run.
type Options struct {
	Analyzer  views.Analyzer
	History   HistoryStore // nil disables history
	Logger    zerolog.Logger
	Config    *config.Config // shown in the settings view
	ConfigDir string
}

// Run starts the full-screen TUI and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Analyzer == nil {
		return errors.New("tui: analyzer is required")
	}

	app := NewApp(opts)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if m, ok := final.(AppModel); ok {
		m.analyzeView.Close()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
