package pricing

import (
	"math"

	"github.com/iwvelando/plan-pricing/pkg/constants"
	"github.com/iwvelando/plan-pricing/pkg/mathutil"
)

// SolveForTargetPV finds the level installment amount, and with it the total
// nominal price, that makes the structure's present value equal targetPV.
//
// With a percentage down payment the down payment depends on the total being
// solved for. Writing T = (S + N·A)/(1-p) and target = F + f·A + p·T, where S
// and F are the nominal and PV of the fixed components, f the annuity factor
// and N the installment count, gives the closed form
//
//	A = (target - F - K·S) / (f + K·N),  K = p/(1-p).
func SolveForTargetPV(std StandardPlan, in PlanInputs, targetPV float64) (PlanResult, error) {
	layout, err := newPlanLayout(in)
	if err != nil {
		return PlanResult{}, err
	}

	rate := MonthlyRateFromAnnual(std.FinancialDiscountRate)
	fixedPV, err := PresentValue(layout.fixedCashFlows(), rate)
	if err != nil {
		return PlanResult{}, err
	}

	factor := 0.0
	if layout.numEqual > 0 {
		factor, err = AnnuityFactor(layout.numEqual, layout.frequency, rate, layout.effectiveStartYears)
		if err != nil {
			return PlanResult{}, err
		}
	}
	solvable := layout.numEqual > 0 && factor > constants.FactorTolerance
	n := float64(layout.numEqual)

	meta := layout.meta()
	var amount, total, downPayment float64

	switch {
	case in.SplitFirstYearPayments:
		amount = levelAmount(targetPV-fixedPV, factor, solvable, &meta)
		total = layout.fixedNominal + amount*n
		// Reported only; the itemized entries already carry it.
		downPayment = in.DownPaymentValue
		if in.DownPaymentType.IsPercentage() {
			downPayment = mathutil.ApplyPercentage(total, in.DownPaymentValue)
		}

	case in.DownPaymentType.IsPercentage():
		p, err := downPaymentFraction(in)
		if err != nil {
			return PlanResult{}, err
		}
		if solvable {
			k := p / (1 - p)
			denominator := factor + k*n
			if math.Abs(denominator) <= constants.FactorTolerance {
				return PlanResult{}, unsolvablePercentage(in.DownPaymentValue)
			}
			amount = (targetPV - fixedPV - k*layout.fixedNominal) / denominator
			if amount < 0 {
				meta.flag(DiagnosticFixedExceedsTarget)
				amount = 0
			}
		}
		total = (layout.fixedNominal + n*amount) / (1 - p)
		downPayment = p * total

	default:
		downPayment = in.DownPaymentValue
		amount = levelAmount(targetPV-downPayment-fixedPV, factor, solvable, &meta)
		total = downPayment + layout.fixedNominal + amount*n
	}

	pv, err := PresentValue(layout.cashFlows(downPayment, amount), rate)
	if err != nil {
		return PlanResult{}, err
	}
	if meta.Feasible && !mathutil.WithinTolerance(pv, targetPV, constants.PVMatchTolerance) {
		meta.flag(DiagnosticNoInstallmentsToSolve)
	}

	return PlanResult{
		TotalNominalPrice:      total,
		DownPaymentAmount:      downPayment,
		NumEqualInstallments:   layout.numEqual,
		EqualInstallmentAmount: amount,
		EqualInstallmentMonths: layout.months,
		MonthlyRate:            rate,
		CalculatedPV:           pv,
		Meta:                   meta,
	}, nil
}

// levelAmount divides the PV still to be covered by the annuity factor,
// clamping to zero and flagging meta when that is impossible.
func levelAmount(pvToHit, factor float64, solvable bool, meta *PlanMeta) float64 {
	switch {
	case pvToHit < -constants.SolverTolerance:
		meta.flag(DiagnosticFixedExceedsTarget)
		return 0
	case mathutil.IsZeroWithin(pvToHit, constants.SolverTolerance):
		return 0
	case !solvable:
		meta.flag(DiagnosticNoInstallmentsToSolve)
		return 0
	}
	return mathutil.NonNegative(pvToHit / factor)
}
