package pricing

import (
	"github.com/iwvelando/plan-pricing/pkg/constants"
	"github.com/iwvelando/plan-pricing/pkg/mathutil"
)

// DistributeForKnownTotal apportions a decided total nominal price into the
// down payment, the fixed itemized/custom/handover components, and a level
// installment for the remaining periods.
//
// An over-committed structure is clamped to a zero installment and reported
// through Meta rather than failing.
func DistributeForKnownTotal(totalNominalPrice float64, std StandardPlan, in PlanInputs) (PlanResult, error) {
	layout, err := newPlanLayout(in)
	if err != nil {
		return PlanResult{}, err
	}

	downPayment := in.DownPaymentValue
	if in.DownPaymentType.IsPercentage() {
		if !in.SplitFirstYearPayments {
			if _, err := downPaymentFraction(in); err != nil {
				return PlanResult{}, err
			}
		}
		downPayment = mathutil.ApplyPercentage(totalNominalPrice, in.DownPaymentValue)
	}

	committed := layout.fixedNominal
	if !in.SplitFirstYearPayments {
		committed += downPayment
	}

	meta := layout.meta()
	remainder := totalNominalPrice - committed
	amount := 0.0
	switch {
	case remainder < -constants.SolverTolerance:
		meta.flag(DiagnosticOverCommitted)
	case mathutil.IsZeroWithin(remainder, constants.SolverTolerance):
	case layout.numEqual == 0:
		meta.flag(DiagnosticUnallocatedRemainder)
	default:
		amount = mathutil.NonNegative(remainder / float64(layout.numEqual))
	}

	rate := MonthlyRateFromAnnual(std.FinancialDiscountRate)
	pv, err := PresentValue(layout.cashFlows(downPayment, amount), rate)
	if err != nil {
		return PlanResult{}, err
	}

	return PlanResult{
		TotalNominalPrice:      totalNominalPrice,
		DownPaymentAmount:      downPayment,
		NumEqualInstallments:   layout.numEqual,
		EqualInstallmentAmount: amount,
		EqualInstallmentMonths: layout.months,
		MonthlyRate:            rate,
		CalculatedPV:           pv,
		Meta:                   meta,
	}, nil
}
