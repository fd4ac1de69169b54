package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localpay/localpay/internal/cli"
)

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search accounts by name, email or CBU",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
	}

	cmd.Flags().String("city", "", "narrow store results to a city")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, sessions, _, err := initClient()
	if err != nil {
		return err
	}
	sess, err := requireSession(sessions)
	if err != nil {
		return err
	}

	city, _ := cmd.Flags().GetString("city")

	results, err := client.Search(ctx, sess.AccountType, args[0], city)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println(cli.FormatSubtle("Sin resultados para \"" + args[0] + "\""))
		return nil
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("%d resultado(s)", len(results))))
	for _, acct := range results {
		line := cli.BoldStyle.Render(acct.DisplayName())
		if acct.CBU != "" {
			line += "  " + cli.SubtleStyle.Render("CBU "+acct.CBU)
		}
		if acct.Email != "" {
			line += "  " + cli.SubtleStyle.Render(acct.Email)
		}
		fmt.Println(line)
	}
	return nil
}
