package testutil

import (
	"testing"

	"github.com/iwvelando/plan-pricing/internal/quote"
	"github.com/iwvelando/plan-pricing/pkg/pricing"
)

func TestFindQuote(t *testing.T) {
	results := []quote.Quote{
		{Name: "Plan A", Result: pricing.PlanResult{TotalNominalPrice: 1000}},
		{Name: "Plan B", Result: pricing.PlanResult{TotalNominalPrice: 2000}},
	}

	tests := []struct {
		name          string
		searchName    string
		expectFound   bool
		expectedTotal float64
	}{
		{name: "Find plan A", searchName: "Plan A", expectFound: true, expectedTotal: 1000},
		{name: "Find plan B", searchName: "Plan B", expectFound: true, expectedTotal: 2000},
		{name: "Missing plan", searchName: "Plan C"},
		{name: "Case sensitive", searchName: "plan a"},
		{name: "Empty name", searchName: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := FindQuote(results, tt.searchName)
			if !tt.expectFound {
				if found != nil {
					t.Errorf("FindQuote(%q) = %+v, expected nil", tt.searchName, found)
				}
				return
			}
			if found == nil {
				t.Fatalf("FindQuote(%q) returned nil", tt.searchName)
			}
			if found.Result.TotalNominalPrice != tt.expectedTotal {
				t.Errorf("FindQuote(%q) total = %v, expected %v", tt.searchName, found.Result.TotalNominalPrice, tt.expectedTotal)
			}
		})
	}
}

func TestFindQuoteReturnsElement(t *testing.T) {
	results := []quote.Quote{{Name: "Plan A"}}
	FindQuote(results, "Plan A").Name = "Renamed"
	if results[0].Name != "Renamed" {
		t.Errorf("FindQuote should return a pointer into the slice")
	}
	if FindQuote(nil, "Plan A") != nil {
		t.Errorf("FindQuote(nil) should return nil")
	}
}

func TestFixturesPrice(t *testing.T) {
	result, err := pricing.CalculateForTargetPV(StandardPlan(), FiveYearMonthly())
	if err != nil {
		t.Fatalf("CalculateForTargetPV() error = %v", err)
	}
	if !result.Meta.Feasible || result.NumEqualInstallments != 60 {
		t.Errorf("unexpected fixture result %+v", result.Meta)
	}
}
