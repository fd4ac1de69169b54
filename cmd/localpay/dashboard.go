package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/localpay/localpay/internal/tui"
	"github.com/localpay/localpay/internal/tui/themes"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Launch the full-screen dashboard: balance, money-moving wizards,
transaction history, account search and notifications.`,
		RunE: runDashboard,
	}

	cmd.Flags().String("theme", "default", "color theme (default, catppuccin-mocha)")
	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, sessions, cfg, err := initClient()
	if err != nil {
		return err
	}
	sess, err := requireSession(sessions)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return tui.Run(ctx, tui.Config{
		Client:      client,
		Storage:     store,
		Account:     sess.Account,
		AccountType: sess.AccountType,
		PayHost:     cfg.PayHost,
		Theme:       themes.GetTheme(viper.GetString("ui.theme")),
	})
}
