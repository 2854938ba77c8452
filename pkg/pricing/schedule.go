package pricing

import (
	"math"

	"github.com/iwvelando/plan-pricing/pkg/constants"
	"github.com/iwvelando/plan-pricing/pkg/mathutil"
)

// MonthlyRateFromAnnual converts an annual percentage into the equivalent
// compound monthly rate. Non-finite or non-positive input yields 0.
func MonthlyRateFromAnnual(annualPercent float64) float64 {
	if !mathutil.IsFinite(annualPercent) || annualPercent <= 0 {
		return 0
	}
	return math.Pow(1+annualPercent/constants.PercentageMultiplier, 1.0/constants.MonthsPerYear) - 1
}

// PaymentMonths returns count month offsets for installments of the given
// cadence, starting after startAfterYears whole years.
func PaymentMonths(count int, frequency Frequency, startAfterYears int) ([]int, error) {
	if count <= 0 {
		return []int{}, nil
	}
	period, firstOffset, err := frequency.cadence()
	if err != nil {
		return nil, err
	}

	months := make([]int, count)
	months[0] = startAfterYears*constants.MonthsPerYear + firstOffset
	for i := 1; i < count; i++ {
		months[i] = months[i-1] + period
	}
	return months, nil
}

// MainFrequency returns the plan's installment cadence, defaulting to Monthly.
func (in PlanInputs) MainFrequency() (Frequency, error) {
	if in.InstallmentFrequency == "" {
		return Monthly, nil
	}
	return ParseFrequency(string(in.InstallmentFrequency))
}

// NormalizeYearlyBlocks assigns absolute year numbers to the custom years and
// fills a missing frequency with the plan's main cadence. Custom years start
// at year 2 when the first year is split, year 1 otherwise.
func NormalizeYearlyBlocks(in PlanInputs) ([]YearlyBlock, error) {
	mainFrequency, err := in.MainFrequency()
	if err != nil {
		return nil, err
	}

	startYear := 1
	if in.SplitFirstYearPayments {
		startYear = 2
	}

	blocks := make([]YearlyBlock, 0, len(in.SubsequentYears))
	for i, year := range in.SubsequentYears {
		frequency := mainFrequency
		if year.Frequency != "" {
			frequency, err = ParseFrequency(string(year.Frequency))
			if err != nil {
				return nil, err
			}
		}
		blocks = append(blocks, YearlyBlock{
			YearNumber:   startYear + i,
			TotalNominal: year.TotalNominal,
			Frequency:    frequency,
		})
	}
	return blocks, nil
}

// planLayout holds everything about a structure that does not depend on the
// unknown installment amount.
type planLayout struct {
	inputs              PlanInputs
	frequency           Frequency
	blocks              []YearlyBlock
	effectiveStartYears int
	numEqual            int
	months              []int
	fixedNominal        float64
}

func newPlanLayout(in PlanInputs) (planLayout, error) {
	frequency, err := in.MainFrequency()
	if err != nil {
		return planLayout{}, err
	}
	blocks, err := NormalizeYearlyBlocks(in)
	if err != nil {
		return planLayout{}, err
	}

	layout := planLayout{
		inputs:              in,
		frequency:           frequency,
		blocks:              blocks,
		effectiveStartYears: len(in.SubsequentYears),
	}
	if in.SplitFirstYearPayments {
		layout.effectiveStartYears++
	}

	if equalYears := in.PlanDurationYears - layout.effectiveStartYears; equalYears > 0 {
		perYear, err := frequency.InstallmentsPerYear()
		if err != nil {
			return planLayout{}, err
		}
		layout.numEqual = equalYears * perYear
	}

	layout.months, err = PaymentMonths(layout.numEqual, frequency, layout.effectiveStartYears)
	if err != nil {
		return planLayout{}, err
	}

	if in.SplitFirstYearPayments {
		for _, p := range in.FirstYearPayments {
			layout.fixedNominal += p.Amount
		}
	}
	for _, b := range blocks {
		layout.fixedNominal += b.TotalNominal
	}
	layout.fixedNominal += in.AdditionalHandoverPayment

	return layout, nil
}

func (l planLayout) meta() PlanMeta {
	return PlanMeta{
		EffectiveStartYears:    l.effectiveStartYears,
		SplitFirstYearPayments: l.inputs.SplitFirstYearPayments,
		Feasible:               true,
	}
}

// cashFlows assembles the full structure. The month-zero down payment is
// dropped when the first year is split, since it is then one of the entries.
func (l planLayout) cashFlows(downPayment, installmentAmount float64) CashFlows {
	cf := l.fixedCashFlows()
	if !l.inputs.SplitFirstYearPayments {
		cf.DownPayment = downPayment
	}
	cf.InstallmentAmount = installmentAmount
	cf.InstallmentMonths = l.months
	return cf
}

// fixedCashFlows holds only the components independent of the unknowns.
func (l planLayout) fixedCashFlows() CashFlows {
	cf := CashFlows{
		YearlyBlocks:    l.blocks,
		HandoverPayment: l.inputs.AdditionalHandoverPayment,
		HandoverYear:    l.inputs.HandoverYear,
	}
	if l.inputs.SplitFirstYearPayments {
		cf.FirstYearPayments = l.inputs.FirstYearPayments
	}
	return cf
}

// downPaymentFraction validates a percentage down payment and returns it as
// a fraction in [0, 1).
func downPaymentFraction(in PlanInputs) (float64, error) {
	p := mathutil.Clamp(in.DownPaymentValue/constants.PercentageMultiplier, 0, 1)
	if p >= 1-constants.FactorTolerance {
		return 0, unsolvablePercentage(in.DownPaymentValue)
	}
	return p, nil
}
