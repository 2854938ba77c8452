package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var standard = StandardPlan{TotalPrice: 1000000, FinancialDiscountRate: 12, CalculatedPV: 850000}

func fiveYearMonthly(downPayment float64) PlanInputs {
	return PlanInputs{
		DownPaymentType:      DownPaymentAmount,
		DownPaymentValue:     downPayment,
		PlanDurationYears:    5,
		InstallmentFrequency: Monthly,
	}
}

func TestDistributeForKnownTotal(t *testing.T) {
	rate := MonthlyRateFromAnnual(12)

	result, err := DistributeForKnownTotal(985000, standard, fiveYearMonthly(100000))
	require.NoError(t, err)

	assert.Equal(t, 985000.0, result.TotalNominalPrice)
	assert.Equal(t, 100000.0, result.DownPaymentAmount)
	assert.Equal(t, 60, result.NumEqualInstallments)
	assert.Len(t, result.EqualInstallmentMonths, 60)
	assert.Equal(t, 1, result.EqualInstallmentMonths[0])
	assert.Equal(t, 60, result.EqualInstallmentMonths[59])
	assert.InDelta(t, 14750.0, result.EqualInstallmentAmount, 1e-9)
	assert.InDelta(t, rate, result.MonthlyRate, 1e-15)

	factor, err := AnnuityFactor(60, Monthly, rate, 0)
	require.NoError(t, err)
	assert.InDelta(t, 100000+14750*factor, result.CalculatedPV, 1e-6)
	assert.True(t, result.Meta.Feasible)
	assert.Empty(t, result.Meta.Diagnostics)
	assert.NoError(t, result.Err())
}

func TestDistributePercentageDownPayment(t *testing.T) {
	in := fiveYearMonthly(10)
	in.DownPaymentType = DownPaymentPercentage

	result, err := DistributeForKnownTotal(1000000, standard, in)
	require.NoError(t, err)
	assert.InDelta(t, 100000.0, result.DownPaymentAmount, 1e-9)
	assert.InDelta(t, 15000.0, result.EqualInstallmentAmount, 1e-9)
}

func TestDistributeRejectsFullPercentage(t *testing.T) {
	for _, value := range []float64{100, 125} {
		in := fiveYearMonthly(value)
		in.DownPaymentType = DownPaymentPercentage

		_, err := DistributeForKnownTotal(1000000, standard, in)
		assert.ErrorIs(t, err, ErrUnsolvableDownPaymentPercentage)
	}
}

func TestDistributeSplitFirstYear(t *testing.T) {
	rate := MonthlyRateFromAnnual(12)
	in := PlanInputs{
		DownPaymentType:        DownPaymentAmount,
		DownPaymentValue:       50000,
		PlanDurationYears:      3,
		InstallmentFrequency:   Monthly,
		SplitFirstYearPayments: true,
		FirstYearPayments: []PaymentEntry{
			{Amount: 50000, Month: 1, Kind: PaymentKindDownPayment},
			{Amount: 25000, Month: 6, Kind: PaymentKindRegular},
		},
	}

	result, err := DistributeForKnownTotal(300000, standard, in)
	require.NoError(t, err)
	assert.Equal(t, 24, result.NumEqualInstallments)
	assert.Equal(t, 13, result.EqualInstallmentMonths[0])
	assert.InDelta(t, 9375.0, result.EqualInstallmentAmount, 1e-9)
	assert.Equal(t, 1, result.Meta.EffectiveStartYears)
	assert.True(t, result.Meta.SplitFirstYearPayments)

	// The down payment is an itemized entry, never a month-zero flow.
	factor, err := AnnuityFactor(24, Monthly, rate, 1)
	require.NoError(t, err)
	expected := discounted(50000, rate, 1) + discounted(25000, rate, 6) + 9375*factor
	assert.InDelta(t, expected, result.CalculatedPV, 1e-6)
}

func TestDistributeOverCommitted(t *testing.T) {
	result, err := DistributeForKnownTotal(100000, standard, fiveYearMonthly(150000))
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.EqualInstallmentAmount)
	assert.False(t, result.Meta.Feasible)
	assert.Equal(t, []Diagnostic{DiagnosticOverCommitted}, result.Meta.Diagnostics)
	assert.ErrorIs(t, result.Err(), ErrOverCommittedStructure)
}

func TestDistributeUnallocatedRemainder(t *testing.T) {
	in := PlanInputs{
		DownPaymentType:   DownPaymentAmount,
		PlanDurationYears: 1,
		SubsequentYears:   []YearlyBlock{{TotalNominal: 50000}},
	}

	result, err := DistributeForKnownTotal(100000, standard, in)
	require.NoError(t, err)
	assert.Equal(t, 0, result.NumEqualInstallments)
	assert.Empty(t, result.EqualInstallmentMonths)
	assert.Equal(t, []Diagnostic{DiagnosticUnallocatedRemainder}, result.Meta.Diagnostics)
	assert.ErrorIs(t, result.Err(), ErrUnallocatedRemainder)
}

func TestDistributeExactlyCommitted(t *testing.T) {
	in := PlanInputs{
		DownPaymentType:   DownPaymentAmount,
		DownPaymentValue:  100000,
		PlanDurationYears: 1,
		SubsequentYears:   []YearlyBlock{{TotalNominal: 900000, Frequency: Quarterly}},
	}

	result, err := DistributeForKnownTotal(1000000, standard, in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.EqualInstallmentAmount)
	assert.True(t, result.Meta.Feasible)
}

func TestDistributeInvalidFrequency(t *testing.T) {
	in := fiveYearMonthly(0)
	in.InstallmentFrequency = "weekly"

	_, err := DistributeForKnownTotal(1000000, standard, in)
	assert.ErrorIs(t, err, ErrInvalidFrequency)

	in.InstallmentFrequency = Monthly
	in.SubsequentYears = []YearlyBlock{{TotalNominal: 1000, Frequency: "daily"}}
	_, err = DistributeForKnownTotal(1000000, standard, in)
	assert.ErrorIs(t, err, ErrInvalidFrequency)
}
