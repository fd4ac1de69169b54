package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/localpay/localpay/internal/tui/themes"
)

// Run starts the interactive dashboard and blocks until the user quits
// or the context is canceled.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Client == nil {
		return fmt.Errorf("api client is required")
	}
	if cfg.Storage == nil {
		return fmt.Errorf("storage is required")
	}
	if !cfg.AccountType.Valid() {
		return fmt.Errorf("unknown account type %q", cfg.AccountType)
	}
	if cfg.Theme.Primary == "" {
		cfg.Theme = themes.Default
	}

	program := tea.NewProgram(
		newModel(cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
