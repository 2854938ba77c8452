// Package validation provides configuration and request validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/plan-pricing/pkg/constants"
	"github.com/iwvelando/plan-pricing/pkg/pricing"
)

// ConfigValidator checks a whole plan file for structures that will price
// but probably not as intended.
type ConfigValidator struct {
	Plans []PlanConfig
}

// PlanConfig is the subset of a configured plan the checks look at.
type PlanConfig struct {
	Name                   string
	Active                 bool
	Mode                   string
	PlanDurationYears      int
	InstallmentFrequency   string
	DpType                 string
	DownPaymentValue       float64
	HandoverYear           int
	HandoverPayment        float64
	SplitFirstYearPayments bool
	FirstYearMonths        []int
	CustomYearFrequencies  []string
}

// ValidateHandover warns when the handover payment falls after the plan ends
// or has no year to be booked in.
func ValidateHandover(planName string, handoverYear int, handoverPayment float64, durationYears int) string {
	if handoverPayment > 0 && handoverYear <= 0 {
		return fmt.Sprintf("Plan '%s' has a handover payment but no handover year - payment is ignored", planName)
	}
	if handoverYear > durationYears {
		return fmt.Sprintf("Plan '%s' hands over after the plan ends (year %d > %d years)",
			planName, handoverYear, durationYears)
	}
	return ""
}

// ValidateStructureLength warns when the custom years (plus a split first
// year) leave no room for level installments, or overrun the plan.
func ValidateStructureLength(planName string, customYears int, split bool, durationYears int) string {
	used := customYears
	if split {
		used++
	}
	switch {
	case used > durationYears:
		return fmt.Sprintf("Plan '%s' defines %d structured years but lasts only %d", planName, used, durationYears)
	case used == durationYears && used > 0:
		return fmt.Sprintf("Plan '%s' has no years left for equal installments", planName)
	}
	return ""
}

// ValidateAll validates every active plan and returns warnings.
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	for _, plan := range cv.Plans {
		if !plan.Active {
			continue
		}

		if _, err := pricing.ParseMode(plan.Mode); err != nil {
			warnings = append(warnings, fmt.Sprintf("Plan '%s' has unknown mode '%s'", plan.Name, plan.Mode))
		}

		if plan.PlanDurationYears < 1 || plan.PlanDurationYears > constants.MaxPlanDurationYears {
			warnings = append(warnings, fmt.Sprintf("Plan '%s' has a duration of %d years, expected 1..%d",
				plan.Name, plan.PlanDurationYears, constants.MaxPlanDurationYears))
		}

		if plan.InstallmentFrequency != "" {
			if _, err := pricing.ParseFrequency(plan.InstallmentFrequency); err != nil {
				warnings = append(warnings, fmt.Sprintf("Plan '%s' has invalid installment frequency '%s'",
					plan.Name, plan.InstallmentFrequency))
			}
		}
		for i, f := range plan.CustomYearFrequencies {
			if f == "" {
				continue
			}
			if _, err := pricing.ParseFrequency(f); err != nil {
				warnings = append(warnings, fmt.Sprintf("Plan '%s' custom year %d has invalid frequency '%s'", plan.Name, i+1, f))
			}
		}

		if plan.SplitFirstYearPayments {
			for i, m := range plan.FirstYearMonths {
				if m < 1 || m > constants.MonthsPerYear {
					warnings = append(warnings, fmt.Sprintf("Plan '%s' first-year payment %d is in month %d, outside 1..12",
						plan.Name, i+1, m))
				}
			}
		} else if pricing.DownPaymentType(plan.DpType).IsPercentage() && plan.DownPaymentValue >= constants.PercentageMultiplier {
			warnings = append(warnings, fmt.Sprintf("Plan '%s' has a down payment of %g%% - plan cannot be solved",
				plan.Name, plan.DownPaymentValue))
		}

		if w := ValidateHandover(plan.Name, plan.HandoverYear, plan.HandoverPayment, plan.PlanDurationYears); w != "" {
			warnings = append(warnings, w)
		}
		if w := ValidateStructureLength(plan.Name, len(plan.CustomYearFrequencies), plan.SplitFirstYearPayments, plan.PlanDurationYears); w != "" {
			warnings = append(warnings, w)
		}
	}

	return warnings
}
