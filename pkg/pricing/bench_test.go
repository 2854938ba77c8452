package pricing

import "testing"

func benchmarkInputs() PlanInputs {
	return PlanInputs{
		DownPaymentType:           DownPaymentPercentage,
		DownPaymentValue:          10,
		PlanDurationYears:         10,
		InstallmentFrequency:      Monthly,
		AdditionalHandoverPayment: 50000,
		HandoverYear:              3,
		SplitFirstYearPayments:    true,
		FirstYearPayments: []PaymentEntry{
			{Amount: 100000, Month: 1, Kind: PaymentKindDownPayment},
			{Amount: 50000, Month: 6, Kind: PaymentKindRegular},
		},
		SubsequentYears: []YearlyBlock{{TotalNominal: 120000}, {TotalNominal: 80000, Frequency: Quarterly}},
	}
}

func BenchmarkCalculate(b *testing.B) {
	std := StandardPlan{TotalPrice: 1000000, FinancialDiscountRate: 12, CalculatedPV: 850000}
	in := benchmarkInputs()

	for _, mode := range Modes() {
		b.Run(mode.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Calculate(mode, std, in); err != nil {
					b.Fatalf("Calculate() error = %v", err)
				}
			}
		})
	}
}

func BenchmarkAnnuityFactor(b *testing.B) {
	rate := MonthlyRateFromAnnual(12)
	for i := 0; i < b.N; i++ {
		if _, err := AnnuityFactor(120, Monthly, rate, 1); err != nil {
			b.Fatalf("AnnuityFactor() error = %v", err)
		}
	}
}
