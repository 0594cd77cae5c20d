package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/facturio/billpipe/internal/model"
	"github.com/facturio/billpipe/internal/pipeline"
)

var validateJSON bool

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate invoice record files locally",
	Long: `Validate one or more invoice record files (JSON) against the
structural schema and the cross-field rule set. No network call is
made.

Checks performed:
  - Field types, lengths, ranges, enum membership, date/time and
    decimal patterns
  - Deferred payment requires a payment due date
  - Credit/debit notes require related documents
  - Customer must carry a company name or personal names

Examples:
  billpipe validate invoice.json
  billpipe validate drafts/*.json --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Emit results as JSON")
}

// fileValidation is one file's validation outcome.
type fileValidation struct {
	File   string               `json:"file"`
	Valid  bool                 `json:"valid"`
	Kind   string               `json:"kind,omitempty"`
	Errors *model.FieldErrorMap `json:"errors,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	p := pipeline.New(nil) // local passes only, no transmitter needed

	results := make([]*fileValidation, 0, len(args))
	allValid := true

	for _, file := range args {
		result := &fileValidation{File: file}
		record, err := loadRecord(file)
		if err != nil {
			return err
		}

		if failure := p.ValidateLocal(record); failure != nil {
			result.Kind = string(failure.Kind)
			result.Errors = failure.Fields
			allValid = false
		} else {
			result.Valid = true
		}
		results = append(results, result)
	}

	if validateJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ %s: VALID\n", r.File)
				continue
			}
			fmt.Printf("✗ %s: INVALID (%s)\n", r.File, r.Kind)
			for _, path := range r.Errors.Paths() {
				for _, msg := range r.Errors.Get(path) {
					fmt.Printf("  - %s: %s\n", path, msg)
				}
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}
	return nil
}

func loadRecord(path string) (*model.InvoiceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var record model.InvoiceRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &record, nil
}
