// Package adapters provides adapter implementations between different package interfaces.
package adapters

import (
	"github.com/iwvelando/plan-pricing/internal/config"
	"github.com/iwvelando/plan-pricing/pkg/pricing"
)

// ConfigPlanAdapter wraps config.Plan to expose it as pricing values.
type ConfigPlanAdapter struct {
	Plan config.Plan
}

// GetName returns the plan name
func (w ConfigPlanAdapter) GetName() string {
	return w.Plan.Name
}

// GetMode parses the configured calculation mode
func (w ConfigPlanAdapter) GetMode() (pricing.Mode, error) {
	return pricing.ParseMode(w.Plan.Mode)
}

// GetStandardPlan returns the benchmark plan
func (w ConfigPlanAdapter) GetStandardPlan() pricing.StandardPlan {
	return pricing.StandardPlan{
		TotalPrice:            w.Plan.StdPlan.TotalPrice,
		FinancialDiscountRate: w.Plan.StdPlan.FinancialDiscountRate,
		CalculatedPV:          w.Plan.StdPlan.CalculatedPV,
	}
}

// GetInputs returns the proposed structure
func (w ConfigPlanAdapter) GetInputs() pricing.PlanInputs {
	return InputsToPlanInputs(w.Plan.Inputs)
}

// InputsToPlanInputs converts config.Inputs to pricing.PlanInputs
func InputsToPlanInputs(in config.Inputs) pricing.PlanInputs {
	out := pricing.PlanInputs{
		SalesDiscountPercent:      in.SalesDiscountPercent,
		DownPaymentType:           pricing.DownPaymentType(in.DpType),
		DownPaymentValue:          in.DownPaymentValue,
		PlanDurationYears:         in.PlanDurationYears,
		InstallmentFrequency:      pricing.Frequency(in.InstallmentFrequency),
		AdditionalHandoverPayment: in.AdditionalHandoverPayment,
		HandoverYear:              in.HandoverYear,
		SplitFirstYearPayments:    in.SplitFirstYearPayments,
	}

	for _, p := range in.FirstYearPayments {
		out.FirstYearPayments = append(out.FirstYearPayments, pricing.PaymentEntry{
			Amount: p.Amount,
			Month:  p.Month,
			Kind:   pricing.PaymentKind(p.Type),
		})
	}
	for _, y := range in.SubsequentYears {
		out.SubsequentYears = append(out.SubsequentYears, pricing.YearlyBlock{
			TotalNominal: y.TotalNominal,
			Frequency:    pricing.Frequency(y.Frequency),
		})
	}
	return out
}

// PlansToAdapters wraps config.Plan slices
func PlansToAdapters(plans []config.Plan) []ConfigPlanAdapter {
	if plans == nil {
		return nil
	}

	adapters := make([]ConfigPlanAdapter, 0, len(plans))
	for _, plan := range plans {
		adapters = append(adapters, ConfigPlanAdapter{Plan: plan})
	}
	return adapters
}
