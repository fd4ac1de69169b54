package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/localpay/localpay/internal/cli"
	"github.com/localpay/localpay/internal/common"
	"github.com/localpay/localpay/internal/session"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [email]",
		Short: "Log in to your LocalPay account",
		Long: `Authenticate against the LocalPay backend. The same command works
for user and store accounts; the backend detects which one the
credentials belong to.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLogin,
	}
	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, sessions, _, err := initClient()
	if err != nil {
		return err
	}

	reader := cli.NewLineReader(os.Stdin)

	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		email, err = reader.Prompt(ctx, "Email")
		if err != nil {
			return err
		}
	}
	if email == "" {
		return fmt.Errorf("email is required")
	}

	password, err := cli.ReadPassword(ctx, "Contraseña")
	if err != nil {
		return err
	}

	result, err := client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%s", cli.FormatError(common.Message(err, "")))
	}

	if err := sessions.Save(session.Session{
		Token:       result.Token,
		AccountType: result.AccountType,
		Account:     result.Account,
	}); err != nil {
		return err
	}

	common.LogInfo("session established", common.Fields{
		"account_type": string(result.AccountType),
	})
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Sesión iniciada como %s", result.Account.DisplayName())))
	fmt.Println(cli.FormatSubtle("Ejecutá 'localpay dashboard' para abrir el panel interactivo."))
	return nil
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and discard the stored session",
		RunE: func(_ *cobra.Command, _ []string) error {
			sessions, err := initSessionStore()
			if err != nil {
				return err
			}
			if err := sessions.Clear(); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Sesión cerrada"))
			return nil
		},
	}
}
