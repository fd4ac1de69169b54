package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/localpay/localpay/internal/api"
	"github.com/localpay/localpay/internal/cli"
	"github.com/localpay/localpay/internal/model"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your account profile",
	}

	cmd.AddCommand(
		profileShowCmd(),
		profileUpdateCmd(),
		profileEmailCmd(),
		profilePasswordCmd(),
		profilePrivacyCmd(),
	)
	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, sessions, _, err := initClient()
			if err != nil {
				return err
			}
			sess, err := requireSession(sessions)
			if err != nil {
				return err
			}

			account, err := client.Me(cmd.Context(), sess.AccountType)
			if err != nil {
				return err
			}
			fmt.Println(renderProfile(*account, sess.AccountType))
			return nil
		},
	}
}

func renderProfile(a model.Account, acct model.AccountType) string {
	lines := []string{
		"Nombre:    " + a.DisplayName(),
		"Email:     " + a.Email,
	}
	if a.Phone != "" {
		lines = append(lines, "Teléfono:  "+a.Phone)
	}
	if a.CBU != "" {
		lines = append(lines, "CBU:       "+a.CBU)
	}
	if acct == model.AccountTypeStore {
		if a.City != "" {
			lines = append(lines, "Ciudad:    "+a.City)
		}
		if a.BusinessType != "" {
			lines = append(lines, "Rubro:     "+a.BusinessType)
		}
		lines = append(lines, "Comisiones: $"+a.Commissions.StringFixed(2))
	}
	lines = append(lines, fmt.Sprintf("Saldo:     $%s %s", a.Balance.StringFixed(2), a.CurrencyOrDefault()))
	if p := a.Privacy; p != nil {
		lines = append(lines,
			"Mostrar email:    "+yesNo(p.ShowEmail),
			"Mostrar teléfono: "+yesNo(p.ShowPhone),
		)
	}
	return cli.RenderBox("Mi Perfil", strings.Join(lines, "\n"))
}

func yesNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}

func profileUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update editable profile fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, sessions, _, err := initClient()
			if err != nil {
				return err
			}
			sess, err := requireSession(sessions)
			if err != nil {
				return err
			}

			upd := api.ProfileUpdate{}
			upd.FullName, _ = cmd.Flags().GetString("name")
			upd.Phone, _ = cmd.Flags().GetString("phone")
			upd.City, _ = cmd.Flags().GetString("city")
			upd.BusinessType, _ = cmd.Flags().GetString("type")
			if sess.AccountType == model.AccountTypeStore {
				upd.BusinessName = upd.FullName
				upd.FullName = ""
			}
			if upd == (api.ProfileUpdate{}) {
				return fmt.Errorf("nothing to update; pass at least one of --name, --phone, --city, --type")
			}

			account, err := client.UpdateProfile(cmd.Context(), sess.AccountType, upd)
			if err != nil {
				return err
			}

			sess.Account = *account
			if err := sessions.Save(*sess); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Perfil actualizado"))
			return nil
		},
	}

	cmd.Flags().String("name", "", "full name (or business name for stores)")
	cmd.Flags().String("phone", "", "phone number")
	cmd.Flags().String("city", "", "city (stores only)")
	cmd.Flags().String("type", "", "business type (stores only)")

	return cmd
}

func profileEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "email <new-email>",
		Short: "Change the account email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, sessions, _, err := initClient()
			if err != nil {
				return err
			}
			sess, err := requireSession(sessions)
			if err != nil {
				return err
			}

			password, err := cli.ReadPassword(ctx, "Contraseña actual")
			if err != nil {
				return err
			}

			if err := client.UpdateEmail(ctx, sess.AccountType, args[0], password); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Email actualizado. Revisá tu casilla para verificarlo."))
			return nil
		},
	}
}

func profilePasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "password",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, sessions, _, err := initClient()
			if err != nil {
				return err
			}
			sess, err := requireSession(sessions)
			if err != nil {
				return err
			}

			current, err := cli.ReadPassword(ctx, "Contraseña actual")
			if err != nil {
				return err
			}
			next, err := cli.ReadPassword(ctx, "Nueva contraseña")
			if err != nil {
				return err
			}
			confirm, err := cli.ReadPassword(ctx, "Confirmar nueva contraseña")
			if err != nil {
				return err
			}
			if next != confirm {
				return fmt.Errorf("%s", cli.FormatError("Las contraseñas no coinciden"))
			}

			if err := client.UpdatePassword(ctx, sess.AccountType, current, next); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Contraseña actualizada"))
			return nil
		},
	}
}

func profilePrivacyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "privacy",
		Short: "Choose what other accounts can see",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, sessions, _, err := initClient()
			if err != nil {
				return err
			}
			sess, err := requireSession(sessions)
			if err != nil {
				return err
			}

			// Start from the current settings so one flag never
			// silently resets the other.
			privacy := model.PrivacySettings{}
			if sess.Account.Privacy != nil {
				privacy = *sess.Account.Privacy
			}
			if cmd.Flags().Changed("show-email") {
				privacy.ShowEmail, _ = cmd.Flags().GetBool("show-email")
			}
			if cmd.Flags().Changed("show-phone") {
				privacy.ShowPhone, _ = cmd.Flags().GetBool("show-phone")
			}
			if !cmd.Flags().Changed("show-email") && !cmd.Flags().Changed("show-phone") {
				_ = cmd.Help()
				return nil
			}

			if err := client.UpdatePrivacy(cmd.Context(), sess.AccountType, privacy); err != nil {
				return err
			}

			sess.Account.Privacy = &privacy
			if err := sessions.Save(*sess); err != nil {
				fmt.Fprintln(os.Stderr, cli.FormatWarning("No se pudo actualizar la sesión local"))
			}
			fmt.Println(cli.FormatSuccess("Privacidad actualizada"))
			return nil
		},
	}

	cmd.Flags().Bool("show-email", false, "show your email to other accounts")
	cmd.Flags().Bool("show-phone", false, "show your phone to other accounts")

	return cmd
}
