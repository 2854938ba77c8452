package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveForTargetPVAmountDownPayment(t *testing.T) {
	rate := MonthlyRateFromAnnual(12)
	in := fiveYearMonthly(100000)
	in.HandoverYear = 2

	result, err := SolveForTargetPV(standard, in, 850000)
	require.NoError(t, err)

	factor, err := AnnuityFactor(60, Monthly, rate, 0)
	require.NoError(t, err)

	assert.Equal(t, 60, result.NumEqualInstallments)
	assert.Equal(t, 100000.0, result.DownPaymentAmount)
	assert.InDelta(t, 750000/factor, result.EqualInstallmentAmount, 1e-9)
	assert.InDelta(t, 100000+60*result.EqualInstallmentAmount, result.TotalNominalPrice, 1e-6)
	assert.InDelta(t, 850000, result.CalculatedPV, 1e-3)
	assert.True(t, result.Meta.Feasible)
}

func TestSolveForTargetPVZeroRate(t *testing.T) {
	std := StandardPlan{TotalPrice: 1000000, FinancialDiscountRate: 0, CalculatedPV: 850000}

	result, err := SolveForTargetPV(std, fiveYearMonthly(100000), 850000)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.MonthlyRate)
	assert.InDelta(t, 12500.0, result.EqualInstallmentAmount, 1e-9)
	assert.InDelta(t, 850000.0, result.TotalNominalPrice, 1e-6)
}

func TestSolveForTargetPVPercentageRoundTrip(t *testing.T) {
	in := PlanInputs{
		DownPaymentType:           DownPaymentPercentage,
		DownPaymentValue:          20,
		PlanDurationYears:         5,
		InstallmentFrequency:      Monthly,
		AdditionalHandoverPayment: 50000,
		HandoverYear:              3,
		SubsequentYears:           []YearlyBlock{{TotalNominal: 120000, Frequency: Quarterly}},
	}

	result, err := SolveForTargetPV(standard, in, 850000)
	require.NoError(t, err)

	assert.Equal(t, 48, result.NumEqualInstallments)
	assert.Equal(t, 13, result.EqualInstallmentMonths[0])
	assert.Greater(t, result.EqualInstallmentAmount, 0.0)
	assert.InDelta(t, 0.2*result.TotalNominalPrice, result.DownPaymentAmount, 1e-6)
	assert.InDelta(t, (170000+48*result.EqualInstallmentAmount)/0.8, result.TotalNominalPrice, 1e-6)
	assert.InDelta(t, 850000, result.CalculatedPV, 1e-3)
	assert.True(t, result.Meta.Feasible)
}

func TestSolveForTargetPVSplitRoundTrip(t *testing.T) {
	in := PlanInputs{
		DownPaymentType:        DownPaymentAmount,
		DownPaymentValue:       100000,
		PlanDurationYears:      4,
		InstallmentFrequency:   Monthly,
		SplitFirstYearPayments: true,
		FirstYearPayments: []PaymentEntry{
			{Amount: 100000, Month: 1, Kind: PaymentKindDownPayment},
			{Amount: 50000, Month: 6, Kind: PaymentKindRegular},
		},
		SubsequentYears: []YearlyBlock{{TotalNominal: 150000, Frequency: Annually}},
	}

	result, err := SolveForTargetPV(standard, in, 850000)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Meta.EffectiveStartYears)
	assert.Equal(t, 24, result.NumEqualInstallments)
	assert.Equal(t, 25, result.EqualInstallmentMonths[0])
	assert.Equal(t, 100000.0, result.DownPaymentAmount)
	assert.InDelta(t, 300000+24*result.EqualInstallmentAmount, result.TotalNominalPrice, 1e-6)
	assert.InDelta(t, 850000, result.CalculatedPV, 1e-3)
}

func TestSolveForTargetPVSplitReportsPercentageDownPayment(t *testing.T) {
	in := PlanInputs{
		DownPaymentType:        DownPaymentPercentage,
		DownPaymentValue:       10,
		PlanDurationYears:      4,
		InstallmentFrequency:   Monthly,
		SplitFirstYearPayments: true,
		FirstYearPayments: []PaymentEntry{
			{Amount: 100000, Month: 1, Kind: PaymentKindDownPayment},
			{Amount: 50000, Month: 6, Kind: PaymentKindRegular},
		},
	}

	result, err := SolveForTargetPV(standard, in, 850000)
	require.NoError(t, err)

	// The itemized entries carry the payment; the figure is informational
	// and does not enter the total.
	assert.InDelta(t, 150000+36*result.EqualInstallmentAmount, result.TotalNominalPrice, 1e-6)
	assert.InDelta(t, 0.1*result.TotalNominalPrice, result.DownPaymentAmount, 1e-6)
	assert.InDelta(t, 850000, result.CalculatedPV, 1e-3)
}

func TestSolveForTargetPVFixedExceedsTarget(t *testing.T) {
	result, err := SolveForTargetPV(standard, fiveYearMonthly(900000), 850000)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.EqualInstallmentAmount)
	assert.Equal(t, 900000.0, result.TotalNominalPrice)
	assert.False(t, result.Meta.Feasible)
	assert.Equal(t, []Diagnostic{DiagnosticFixedExceedsTarget}, result.Meta.Diagnostics)
	assert.ErrorIs(t, result.Err(), ErrTargetUnreachable)

	in := PlanInputs{
		DownPaymentType:   DownPaymentPercentage,
		DownPaymentValue:  10,
		PlanDurationYears: 5,
		SubsequentYears:   []YearlyBlock{{TotalNominal: 2000000}},
	}
	result, err = SolveForTargetPV(standard, in, 850000)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.EqualInstallmentAmount)
	assert.Contains(t, result.Meta.Diagnostics, DiagnosticFixedExceedsTarget)
}

func TestSolveForTargetPVNoInstallments(t *testing.T) {
	in := PlanInputs{
		DownPaymentType:        DownPaymentAmount,
		DownPaymentValue:       100000,
		PlanDurationYears:      1,
		SplitFirstYearPayments: true,
		FirstYearPayments:      []PaymentEntry{{Amount: 100000, Month: 1, Kind: PaymentKindDownPayment}},
	}

	result, err := SolveForTargetPV(standard, in, 850000)
	require.NoError(t, err)
	assert.Equal(t, 0, result.NumEqualInstallments)
	assert.Equal(t, 100000.0, result.TotalNominalPrice)
	assert.Equal(t, []Diagnostic{DiagnosticNoInstallmentsToSolve}, result.Meta.Diagnostics)
	assert.ErrorIs(t, result.Err(), ErrTargetUnreachable)
}

func TestSolveForTargetPVUnsolvablePercentage(t *testing.T) {
	for _, value := range []float64{100, 150} {
		in := fiveYearMonthly(value)
		in.DownPaymentType = DownPaymentPercentage

		_, err := SolveForTargetPV(standard, in, 850000)
		assert.ErrorIs(t, err, ErrUnsolvableDownPaymentPercentage, "value %v", value)
	}
}
