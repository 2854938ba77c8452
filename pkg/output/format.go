// Package output provides utilities for formatting and displaying priced plans.
package output

import (
	"fmt"
	"strings"

	"github.com/iwvelando/plan-pricing/internal/quote"
	"github.com/iwvelando/plan-pricing/pkg/constants"
	"github.com/iwvelando/plan-pricing/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []quote.Quote, currency string) {
	p := message.NewPrinter(language.English)
	for _, result := range results {
		r := result.Result
		fmt.Printf("--- Results for plan %s (%s) ---\n", result.Name, result.Mode)
		fmt.Printf("Total nominal price: %s\n", format.Currency(r.TotalNominalPrice, currency))
		fmt.Printf("Down payment:        %s\n", format.Currency(r.DownPaymentAmount, currency))
		fmt.Printf("Equal installments:  %d x %s\n", r.NumEqualInstallments, format.Currency(r.EqualInstallmentAmount, currency))
		fmt.Printf("Monthly rate:        %s\n", format.Percent(r.MonthlyRate*constants.PercentageMultiplier))
		fmt.Printf("Present value:       %s (standard %s)\n",
			format.Currency(r.CalculatedPV, currency), format.Currency(result.Standard.CalculatedPV, currency))
		if !r.Meta.Feasible {
			diagnostics := make([]string, len(r.Meta.Diagnostics))
			for i, d := range r.Meta.Diagnostics {
				diagnostics[i] = string(d)
			}
			fmt.Printf("Warning:             %s\n", strings.Join(diagnostics, ","))
		}
		fmt.Printf("Month | Label | Amount | In words\n")
		fmt.Printf("_____ | _____ | ______ | ________\n")
		for _, e := range result.Schedule.Schedule {
			_, _ = p.Printf("%d | %s | %.2f | %s\n", e.Month, e.Label, e.Amount, e.WrittenAmount)
		}
		_, _ = p.Printf("%d payments totalling %.2f\n", result.Schedule.Totals.Count, result.Schedule.Totals.TotalNominal)
		if len(results) > 1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format, one row per payment.
func CsvFormat(results []quote.Quote) {
	fmt.Printf(`"plan","mode","month","label","amount","written amount"`)
	fmt.Printf("\n")
	for _, result := range results {
		for _, e := range result.Schedule.Schedule {
			fmt.Printf(`"%s","%s","%d","%s","%.2f","%s"`,
				quoted(result.Name), result.Mode, e.Month, quoted(e.Label), e.Amount, quoted(e.WrittenAmount))
			fmt.Printf("\n")
		}
	}
}

func quoted(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}
