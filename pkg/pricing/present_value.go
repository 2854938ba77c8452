package pricing

import (
	"github.com/cockroachdb/errors"
	"github.com/iwvelando/plan-pricing/pkg/constants"
	"github.com/iwvelando/plan-pricing/pkg/mathutil"
)

// CashFlows bundles every component of a plan for discounting. Any subset
// may be zero or empty.
type CashFlows struct {
	// DownPayment is booked undiscounted at month 0.
	DownPayment       float64
	FirstYearPayments []PaymentEntry
	// YearlyBlocks must already be normalized (see NormalizeYearlyBlocks).
	YearlyBlocks      []YearlyBlock
	InstallmentAmount float64
	InstallmentMonths []int
	HandoverPayment   float64
	HandoverYear      int
}

// PresentValue discounts cf to month zero at monthlyRate. Itemized entries
// with a non-positive amount or month are skipped.
func PresentValue(cf CashFlows, monthlyRate float64) (float64, error) {
	pv := 0.0

	if cf.DownPayment > 0 {
		pv += cf.DownPayment
	}

	for _, p := range cf.FirstYearPayments {
		if p.Amount > 0 && p.Month > 0 {
			pv += p.Amount * mathutil.DiscountFactor(monthlyRate, p.Month)
		}
	}

	for _, block := range cf.YearlyBlocks {
		blockPV, err := yearlyBlockPV(block, monthlyRate)
		if err != nil {
			return 0, err
		}
		pv += blockPV
	}

	if cf.InstallmentAmount > 0 {
		for _, m := range cf.InstallmentMonths {
			if m > 0 {
				pv += cf.InstallmentAmount * mathutil.DiscountFactor(monthlyRate, m)
			}
		}
	}

	if cf.HandoverPayment > 0 && cf.HandoverYear > 0 {
		pv += cf.HandoverPayment * mathutil.DiscountFactor(monthlyRate, cf.HandoverYear*constants.MonthsPerYear)
	}

	return pv, nil
}

func yearlyBlockPV(block YearlyBlock, monthlyRate float64) (float64, error) {
	if block.TotalNominal <= 0 {
		return 0, nil
	}
	perYear, err := block.Frequency.InstallmentsPerYear()
	if err != nil {
		return 0, errors.Wrapf(err, "custom year %d", block.YearNumber)
	}

	startAfter := block.YearNumber - 1
	if startAfter < 0 {
		startAfter = 0
	}
	months, err := PaymentMonths(perYear, block.Frequency, startAfter)
	if err != nil {
		return 0, err
	}

	perInstallment := block.TotalNominal / float64(perYear)
	pv := 0.0
	for _, m := range months {
		pv += perInstallment * mathutil.DiscountFactor(monthlyRate, m)
	}
	return pv, nil
}

// AnnuityFactor is the present value of one unit paid on every month of
// PaymentMonths(count, frequency, startAfterYears).
func AnnuityFactor(count int, frequency Frequency, monthlyRate float64, startAfterYears int) (float64, error) {
	months, err := PaymentMonths(count, frequency, startAfterYears)
	if err != nil {
		return 0, err
	}
	factor := 0.0
	for _, m := range months {
		if m > 0 {
			factor += mathutil.DiscountFactor(monthlyRate, m)
		}
	}
	return factor, nil
}
