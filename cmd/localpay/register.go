package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localpay/localpay/internal/api"
	"github.com/localpay/localpay/internal/cli"
	"github.com/localpay/localpay/internal/common"
	"github.com/localpay/localpay/internal/model"
)

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new LocalPay account",
	}
	cmd.AddCommand(registerUserCmd())
	cmd.AddCommand(registerStoreCmd())
	cmd.AddCommand(verifyEmailCmd())
	cmd.AddCommand(resendVerificationCmd())
	return cmd
}

func registerUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Register a personal account",
		RunE:  runRegisterUser,
	}
	cmd.Flags().String("name", "", "full name")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("phone", "", "phone number")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runRegisterUser(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, _, _, err := initClient()
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	phone, _ := cmd.Flags().GetString("phone")

	password, err := cli.ReadPassword(ctx, "Contraseña")
	if err != nil {
		return err
	}
	confirm, err := cli.ReadPassword(ctx, "Repetir contraseña")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("%s", cli.FormatError("Las contraseñas no coinciden"))
	}

	result, err := client.RegisterUser(ctx, api.RegisterUserRequest{
		FullName: name,
		Email:    email,
		Phone:    phone,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("%s", cli.FormatError(common.Message(err, "")))
	}

	reportRegistration(email, result)
	return nil
}

func registerStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Register a store account",
		RunE:  runRegisterStore,
	}
	cmd.Flags().String("name", "", "business name")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("phone", "", "phone number")
	cmd.Flags().String("city", "", "city")
	cmd.Flags().String("type", "", "business type")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runRegisterStore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, _, _, err := initClient()
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	phone, _ := cmd.Flags().GetString("phone")
	city, _ := cmd.Flags().GetString("city")
	businessType, _ := cmd.Flags().GetString("type")

	password, err := cli.ReadPassword(ctx, "Contraseña")
	if err != nil {
		return err
	}

	result, err := client.RegisterStore(ctx, api.RegisterStoreRequest{
		BusinessName: name,
		Email:        email,
		Phone:        phone,
		City:         city,
		BusinessType: businessType,
		Password:     password,
	})
	if err != nil {
		return fmt.Errorf("%s", cli.FormatError(common.Message(err, "")))
	}

	reportRegistration(email, result)
	return nil
}

func reportRegistration(email string, result *api.RegisterResult) {
	fmt.Println(cli.FormatSuccess("Cuenta creada"))
	if result.RequiresVerification {
		fmt.Println(cli.FormatWarning(fmt.Sprintf(
			"Revisá tu correo %s y confirmá con 'localpay register verify-email'", email)))
	}
	if result.Message != "" {
		fmt.Println(cli.FormatSubtle(result.Message))
	}
}

func verifyEmailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-email <email> <code>",
		Short: "Confirm an account's email with the mailed code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, _, err := initClient()
			if err != nil {
				return err
			}

			acct := accountTypeFlag(cmd)
			account, err := client.VerifyEmail(cmd.Context(), acct, args[0], args[1])
			if err != nil {
				return fmt.Errorf("%s", cli.FormatError(common.Message(err, "")))
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Email verificado. Ya podés iniciar sesión, %s.", account.DisplayName())))
			return nil
		},
	}
	cmd.Flags().Bool("store", false, "the account is a store")
	return cmd
}

func resendVerificationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resend <email>",
		Short: "Mail a fresh verification code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, _, err := initClient()
			if err != nil {
				return err
			}

			acct := accountTypeFlag(cmd)
			if err := client.ResendVerification(cmd.Context(), acct, args[0]); err != nil {
				return fmt.Errorf("%s", cli.FormatError(common.Message(err, "")))
			}

			fmt.Println(cli.FormatSuccess("Código reenviado. Revisá tu correo."))
			return nil
		},
	}
	cmd.Flags().Bool("store", false, "the account is a store")
	return cmd
}

func accountTypeFlag(cmd *cobra.Command) model.AccountType {
	if isStore, _ := cmd.Flags().GetBool("store"); isStore {
		return model.AccountTypeStore
	}
	return model.AccountTypeUser
}
