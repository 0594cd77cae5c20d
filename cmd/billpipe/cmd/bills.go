package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/facturio/billpipe/internal/billing"
)

var (
	billsFilters []string
	billsPage    int
	billsJSON    bool
	billsNumber  string
)

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "List or show invoices issued through the service",
	Long: `Query the invoice service for issued invoices.

Without --number, lists one page of invoices; filters become
filter[key]=value query parameters. With --number, shows a single
invoice.

Examples:
  billpipe bills
  billpipe bills --filter status=1 --filter identification=123456789 --page 2
  billpipe bills --number SETP990000001`,
	RunE: runBills,
}

func init() {
	rootCmd.AddCommand(billsCmd)

	billsCmd.Flags().StringArrayVar(&billsFilters, "filter", nil, "Listing filter as key=value (repeatable)")
	billsCmd.Flags().IntVar(&billsPage, "page", 0, "Page to fetch")
	billsCmd.Flags().BoolVar(&billsJSON, "json", false, "Emit results as JSON")
	billsCmd.Flags().StringVar(&billsNumber, "number", "", "Show a single invoice by number")
}

func runBills(cmd *cobra.Command, args []string) error {
	if apiURL == "" {
		return fmt.Errorf("the invoice service URL is required (--api-url or BILLING_API_URL)")
	}

	client := billing.NewClient(apiURL, apiToken)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if billsNumber != "" {
		bill, err := client.Get(ctx, billsNumber)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(bill, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	filters := make(map[string]string, len(billsFilters))
	for _, f := range billsFilters {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("invalid filter %q, expected key=value", f)
		}
		filters[key] = value
	}

	list, err := client.List(ctx, billing.ListOptions{Filters: filters, Page: billsPage})
	if err != nil {
		return err
	}

	if billsJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(list)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tCUSTOMER\tIDENTIFICATION\tTOTAL\tCREATED")
	for _, b := range list.Bills {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", b.Number, b.Names, b.Identification, b.Total, b.CreatedAt)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("page %d of %d (%d total)\n",
		list.Pagination.CurrentPage, list.Pagination.LastPage, list.Pagination.Total)
	return nil
}
