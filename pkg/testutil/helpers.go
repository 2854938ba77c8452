// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/plan-pricing/internal/quote"
	"github.com/iwvelando/plan-pricing/pkg/pricing"
)

// FindQuote finds a quote by plan name in the results slice.
// Returns a pointer to the quote if found, nil otherwise.
func FindQuote(results []quote.Quote, name string) *quote.Quote {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// StandardPlan is the benchmark used across tests: 1,000,000 nominal, 12%
// annual discount rate, worth 850,000 today.
func StandardPlan() pricing.StandardPlan {
	return pricing.StandardPlan{TotalPrice: 1000000, FinancialDiscountRate: 12, CalculatedPV: 850000}
}

// FiveYearMonthly is a plain structure: a 100,000 down payment followed by
// five years of monthly installments, with handover at year two.
func FiveYearMonthly() pricing.PlanInputs {
	return pricing.PlanInputs{
		DownPaymentType:      pricing.DownPaymentAmount,
		DownPaymentValue:     100000,
		PlanDurationYears:    5,
		InstallmentFrequency: pricing.Monthly,
		HandoverYear:         2,
	}
}
