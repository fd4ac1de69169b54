package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localpay/localpay/internal/cli"
	"github.com/localpay/localpay/internal/model"
)

func notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "Manage local operation notifications",
	}

	cmd.AddCommand(
		notificationsListCmd(),
		notificationsReadCmd(),
		notificationsReadAllCmd(),
		notificationsDeleteCmd(),
		notificationsClearCmd(),
	)
	return cmd
}

func notificationsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			unreadOnly, _ := cmd.Flags().GetBool("unread")
			items, err := store.ListNotifications(ctx, unreadOnly)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println(cli.FormatSubtle("No hay notificaciones"))
				return nil
			}

			for _, n := range items {
				marker := " "
				if !n.Read {
					marker = cli.BoldStyle.Render("●")
				}
				title := n.Title
				switch n.Type {
				case model.NotificationSuccess:
					title = cli.SuccessStyle.Render(title)
				case model.NotificationError:
					title = cli.ErrorStyle.Render(title)
				}
				fmt.Printf("%s %s  %s\n    %s\n",
					marker,
					cli.SubtleStyle.Render(n.CreatedAt.Local().Format("02/01/2006 15:04")),
					title,
					n.Message,
				)
				fmt.Println(cli.SubtleStyle.Render("    id " + n.ID))
			}
			return nil
		},
	}

	cmd.Flags().Bool("unread", false, "only show unread notifications")

	return cmd
}

func notificationsReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.MarkNotificationRead(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Notificación marcada como leída"))
			return nil
		},
	}
}

func notificationsReadAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.MarkAllNotificationsRead(ctx); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Todas las notificaciones quedaron leídas"))
			return nil
		},
	}
}

func notificationsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteNotification(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Notificación eliminada"))
			return nil
		},
	}
}

func notificationsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every notification",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ClearNotifications(ctx); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Notificaciones eliminadas"))
			return nil
		},
	}
}
