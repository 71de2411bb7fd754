// fintrackctl is a small command line client for the Fintrack API. It drives
// the same form state machine interactive clients use, so a record that
// passes here passes the server's schema too.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"fintrack/internal/client"
	"fintrack/internal/form"
	"fintrack/internal/models"
)

const usage = `usage: fintrackctl [flags] <command>

commands:
  add     create a transaction and print the refreshed listing
  list    print one page of transactions

flags:
`

func main() {
	apiURL := flag.String("api", envOr("FINTRACK_API_URL", "http://localhost:8080"), "Fintrack API base URL")
	token := flag.String("token", os.Getenv("FINTRACK_TOKEN"), "bearer access token")
	txType := flag.String("type", "", "transaction type (Expense, Income, Saving, Investment)")
	category := flag.String("category", "", "expense category")
	amount := flag.String("amount", "", "amount, e.g. 12.50")
	description := flag.String("description", "", "description")
	date := flag.String("date", time.Now().Format("2006-01-02"), "transaction date (YYYY-MM-DD)")
	rangePreset := flag.String("range", "", "listing range preset")
	offset := flag.Int("offset", 0, "listing offset")
	limit := flag.Int("limit", 10, "listing page size")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	if *token == "" {
		fmt.Fprintln(os.Stderr, "a bearer token is required (use -token or FINTRACK_TOKEN)")
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	api := client.New(*apiURL, *token, httpClient)
	ctx := context.Background()

	var err error
	switch flag.Arg(0) {
	case "add":
		err = runAdd(ctx, api, map[string]string{
			"type":        *txType,
			"category":    *category,
			"amount":      *amount,
			"description": *description,
			"created_at":  *date,
		}, models.RangePreset(*rangePreset), *offset, *limit)
	case "list":
		err = runList(ctx, api, models.RangePreset(*rangePreset), *offset, *limit)
	default:
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

// runAdd fills and submits a create form, then prints the refreshed first
// listing page the way the dashboard shows it after a successful save.
func runAdd(ctx context.Context, api *client.Client, fields map[string]string, preset models.RangePreset, offset, limit int) error {
	f := form.NewCreate(api)
	for field, value := range fields {
		if value == "" {
			continue
		}
		if err := f.SetField(field, value); err != nil {
			return err
		}
		f.Blur(field)
	}

	if err := f.Submit(ctx); err != nil {
		if err == form.ErrInvalid {
			for _, field := range []string{"type", "category", "amount", "description", "created_at"} {
				if msg := f.FieldError(field); msg != "" {
					fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
				}
			}
		}
		return err
	}

	fmt.Println("transaction created")
	return runList(ctx, api, preset, offset, limit)
}

func runList(ctx context.Context, api *client.Client, preset models.RangePreset, offset, limit int) error {
	transactions, err := api.FetchTransactions(ctx, preset, offset, limit)
	if err != nil {
		return err
	}

	if len(transactions) == 0 {
		fmt.Println("no transactions")
		return nil
	}
	for _, tx := range transactions {
		category := "-"
		if tx.Category != nil {
			category = *tx.Category
		}
		fmt.Printf("%s  %-10s  %-9s  %10s  %s\n",
			tx.CreatedAt.Format("2006-01-02"), tx.Type, category, tx.Amount.StringFixed(2), tx.Description)
	}
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
