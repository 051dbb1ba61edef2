package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tokenforge/tokenforge-backend/cli/actions"
	"github.com/tokenforge/tokenforge-backend/cli/core/config"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
)

func main() {
	if err := logging.InitServiceLogger(logging.NewDefaultConfig(logging.CliProcess)); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logging.Shutdown()

	if err := config.Init(); err != nil {
		logging.GetServiceLogger().Fatalf("Failed to initialize config: %v", err)
	}

	app := &cli.App{
		Name:  "tokenforge",
		Usage: "TokenForge operator CLI",
		Commands: []*cli.Command{
			{
				Name:   "deploy-token",
				Usage:  "Deploy a new token through the factory",
				Action: actions.DeployToken,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Token name", Required: true},
					&cli.StringFlag{Name: "symbol", Usage: "Token symbol", Required: true},
					&cli.IntFlag{Name: "decimals", Usage: "Token decimals", Value: 18},
					&cli.StringFlag{Name: "supply", Usage: "Initial supply in whole tokens", Required: true},
					&cli.StringFlag{Name: "admin", Usage: "Admin address", Required: true},
					&cli.StringFlag{Name: "metadata-uri", Usage: "Pre-resolved metadata URI (skips the upload and its fee)"},
					&cli.StringFlag{Name: "description", Usage: "Metadata description (published to IPFS)"},
					&cli.StringFlag{Name: "image", Usage: "Metadata image URL (published to IPFS)"},
				},
			},
			{
				Name:   "list-tokens",
				Usage:  "List deployed tokens",
				Action: actions.ListTokens,
			},
			{
				Name:   "quote-fees",
				Usage:  "Quote the deployment fee",
				Action: actions.QuoteFees,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "with-metadata", Usage: "Include the metadata upload fee"},
				},
			},
			{
				Name:   "create-payment",
				Usage:  "Create a recurring payment",
				Action: actions.CreatePayment,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "recipient", Usage: "Recipient address", Required: true},
					&cli.StringFlag{Name: "amount", Usage: "Amount per payment in whole tokens", Required: true},
					&cli.StringFlag{Name: "token", Usage: "Token address", Required: true},
					&cli.StringFlag{Name: "symbol", Usage: "Token symbol"},
					&cli.IntFlag{Name: "decimals", Usage: "Token decimals", Value: 18},
					&cli.StringFlag{Name: "memo", Usage: "Free-form memo"},
					&cli.StringFlag{Name: "interval", Usage: "hourly, daily, weekly, monthly or custom", Required: true},
					&cli.Int64Flag{Name: "interval-seconds", Usage: "Interval in seconds (custom only)"},
					&cli.StringFlag{Name: "creator", Usage: "Creator address", Required: true},
				},
			},
			{
				Name:   "list-payments",
				Usage:  "List recurring payments",
				Action: actions.ListPayments,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Usage: "Filter by status"},
				},
			},
			{
				Name:      "pause-payment",
				Usage:     "Pause a recurring payment",
				ArgsUsage: "<payment-id>",
				Action:    actions.PausePayment,
			},
			{
				Name:      "resume-payment",
				Usage:     "Resume a paused payment",
				ArgsUsage: "<payment-id>",
				Action:    actions.ResumePayment,
			},
			{
				Name:      "cancel-payment",
				Usage:     "Cancel a recurring payment (irreversible)",
				ArgsUsage: "<payment-id>",
				Action:    actions.CancelPayment,
			},
			{
				Name:      "payment-history",
				Usage:     "Show the execution log for a payment",
				ArgsUsage: "<payment-id>",
				Action:    actions.PaymentHistory,
			},
			{
				Name:   "wallet",
				Usage:  "Show the operator wallet state",
				Action: actions.WalletState,
			},
			{
				Name:   "import-key",
				Usage:  "Encrypt a private key into a keystore file",
				Action: actions.ImportKey,
			},
			{
				Name:      "export-key",
				Usage:     "Decrypt a keystore file and print the private key",
				ArgsUsage: "<keystore-path>",
				Action:    actions.ExportKey,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logging.GetServiceLogger().Fatalf("%v", err)
	}
}
