package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localpay/localpay/internal/cli"
	"github.com/localpay/localpay/internal/qr"
)

func qrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Show or decode payment QR codes",
	}

	cmd.AddCommand(qrShowCmd(), qrDecodeCmd())
	return cmd
}

func qrShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show your receiving QR code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, sessions, cfg, err := initClient()
			if err != nil {
				return err
			}
			sess, err := requireSession(sessions)
			if err != nil {
				return err
			}
			if sess.Account.CBU == "" {
				return fmt.Errorf("%s", cli.FormatError("Tu cuenta no tiene un CBU asignado"))
			}

			link, err := qr.PayLink(cfg.PayHost, sess.Account.CBU)
			if err != nil {
				return err
			}
			ascii, err := qr.Render(link)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Cobrá con este QR"))
			fmt.Println(ascii)
			fmt.Println(cli.FormatSubtle(link))
			fmt.Println(cli.FormatSubtle("CBU " + sess.Account.CBU))

			if path, _ := cmd.Flags().GetString("png"); path != "" {
				if err := qr.WritePNG(link, path, 0); err != nil {
					return err
				}
				fmt.Println(cli.FormatSuccess("QR guardado en " + path))
			}
			return nil
		},
	}

	cmd.Flags().String("png", "", "also write the QR to a PNG file")

	return cmd
}

func qrDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <image>",
		Short: "Decode a QR image and report what it contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			scan, err := qr.DecodeFile(args[0])
			if err != nil {
				return err
			}

			switch scan.Kind {
			case qr.ScanPayLink:
				fmt.Println(cli.FormatTitle("Enlace de pago"))
				fmt.Println("CBU: " + scan.Value)
				fmt.Println(cli.FormatSubtle("Pagalo con 'localpay pay " + scan.Value + " --amount <monto>'"))
			case qr.ScanCBU:
				fmt.Println(cli.FormatTitle("CBU"))
				fmt.Println(scan.Value)
			case qr.ScanWithdrawalCode:
				fmt.Println(cli.FormatTitle("Código de retiro"))
				fmt.Println(spacedCode(scan.Value))
				fmt.Println(cli.FormatSubtle("Procesalo con 'localpay withdraw process " + scan.Value + "'"))
			default:
				fmt.Println(cli.FormatWarning("Contenido no reconocido"))
				fmt.Println(scan.Value)
			}
			return nil
		},
	}
}
