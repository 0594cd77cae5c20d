package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/facturio/billpipe/internal/billing"
	"github.com/facturio/billpipe/internal/pipeline"
)

var submitTimeout time.Duration

var submitCmd = &cobra.Command{
	Use:   "submit [files...]",
	Short: "Validate and submit invoice records to the service",
	Long: `Run the full pipeline for one or more invoice record files: local
validation, normalization, transmission, and translation of any
rejection into field errors.

A record that fails local validation is never transmitted.

Examples:
  billpipe submit invoice.json
  billpipe submit invoice.json --api-url https://api.example.com --api-token <token>`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().DurationVar(&submitTimeout, "timeout", 60*time.Second, "Per-file submission timeout")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if apiURL == "" {
		return fmt.Errorf("the invoice service URL is required (--api-url or BILLING_API_URL)")
	}

	client := billing.NewClient(apiURL, apiToken)
	p := pipeline.New(client)

	allOK := true
	for _, file := range args {
		record, err := loadRecord(file)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		result := p.Submit(ctx, record)
		cancel()

		switch result.State {
		case pipeline.StateSucceeded:
			fmt.Printf("✓ %s: ACCEPTED\n", file)
			if len(result.Bill) > 0 {
				var pretty json.RawMessage = result.Bill
				out, err := json.MarshalIndent(pretty, "  ", "  ")
				if err == nil {
					fmt.Printf("  %s\n", out)
				}
			}
		case pipeline.StateFatal:
			allOK = false
			fmt.Printf("✗ %s: FAILED (%s)\n", file, result.Message)
		default:
			allOK = false
			fmt.Printf("✗ %s: REJECTED (%s)\n", file, result.State)
			for _, path := range result.FieldErrors.Paths() {
				for _, msg := range result.FieldErrors.Get(path) {
					fmt.Printf("  - %s: %s\n", path, msg)
				}
			}
		}
	}

	if !allOK {
		return fmt.Errorf("submission failed for some files")
	}
	return nil
}
