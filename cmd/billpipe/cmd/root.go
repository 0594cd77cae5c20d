package cmd

import (
	"github.com/spf13/cobra"

	"github.com/facturio/billpipe/internal/config"
	"github.com/facturio/billpipe/internal/logger"
)

var (
	version = "1.0.0"

	// Global flags
	apiURL    string
	apiToken  string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "billpipe",
	Short: "Validate and submit electronic invoices",
	Long: `Billpipe validates electronic invoice records locally and submits
them to the remote invoice service.

The pipeline runs a structural pass (field types, lengths, patterns),
a cross-field rule pass (conditional requirements), normalizes rate
fields into exact decimals, and translates every failure source into
one field -> messages map.

Examples:
  # Validate invoice records locally
  billpipe validate invoice.json

  # Submit an invoice to the service
  billpipe submit invoice.json --api-url https://api.example.com --api-token <token>

  # List issued invoices
  billpipe bills --filter status=1 --page 2

  # Start the HTTP API
  billpipe serve --address :8080`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Setup(logger.Config{Level: logLevel, Format: logFormat})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Invoice service base URL (env: BILLING_API_URL)")
	rootCmd.PersistentFlags().StringVar(&apiToken, "api-token", "", "Bearer token for the invoice service (env: BILLING_API_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console, json)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	cfg, err := config.Load()
	if err != nil {
		return
	}
	if apiURL == "" {
		apiURL = cfg.Billing.BaseURL
	}
	if apiToken == "" {
		apiToken = cfg.Billing.Token
	}
	if !rootCmd.PersistentFlags().Changed("log-level") {
		logLevel = cfg.Log.Level
	}
	if !rootCmd.PersistentFlags().Changed("log-format") {
		logFormat = cfg.Log.Format
	}
}
