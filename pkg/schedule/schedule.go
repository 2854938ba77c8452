// Package schedule expands a priced plan into its dated payment lines, each
// with the amount written out in words.
package schedule

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iwvelando/plan-pricing/pkg/constants"
	"github.com/iwvelando/plan-pricing/pkg/datetime"
	"github.com/iwvelando/plan-pricing/pkg/pricing"
	"github.com/iwvelando/plan-pricing/pkg/words"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Entry labels.
const (
	LabelDownPayment      = "Down Payment"
	LabelSplitDownPayment = "Down Payment (Y1 split)"
	LabelFirstYear        = "First Year"
	LabelHandover         = "Handover"
	LabelEqualInstallment = "Equal Installment"
)

// Entry is one payment line.
type Entry struct {
	Label         string  `json:"label"`
	Month         int     `json:"month"`
	Amount        float64 `json:"amount"`
	WrittenAmount string  `json:"writtenAmount"`
	// Date is the due date, set only when the contract date is known.
	Date string `json:"date,omitempty"`
}

// Totals summarises a schedule.
type Totals struct {
	Count        int     `json:"count"`
	TotalNominal float64 `json:"totalNominal"`
}

// Plan is an expanded payment schedule.
type Plan struct {
	Schedule []Entry          `json:"schedule"`
	Totals   Totals           `json:"totals"`
	Meta     pricing.PlanMeta `json:"meta"`
}

// YearLabel names the entries of a custom year block.
func YearLabel(block pricing.YearlyBlock) string {
	return fmt.Sprintf("Year %d (%s)", block.YearNumber, block.Frequency)
}

// Build lists every payment of the plan priced from in: the down payment (or
// the itemized first year when split), the custom years, the handover payment
// and the level installments. Lines with a non-positive amount are dropped and
// the rest are ordered by month, then label. A nil speller spells in English.
func Build(result pricing.PlanResult, in pricing.PlanInputs, speller words.Speller) (Plan, error) {
	if speller == nil {
		speller = words.English{}
	}

	var entries []Entry
	if in.SplitFirstYearPayments {
		for _, p := range in.FirstYearPayments {
			label := LabelFirstYear
			if p.Kind.IsDownPayment() {
				label = LabelSplitDownPayment
			}
			entries = append(entries, Entry{Label: label, Month: p.Month, Amount: p.Amount})
		}
	} else {
		entries = append(entries, Entry{Label: LabelDownPayment, Month: 0, Amount: result.DownPaymentAmount})
	}

	blocks, err := pricing.NormalizeYearlyBlocks(in)
	if err != nil {
		return Plan{}, err
	}
	for _, block := range blocks {
		blockEntries, err := expandBlock(block)
		if err != nil {
			return Plan{}, err
		}
		entries = append(entries, blockEntries...)
	}

	if in.HandoverYear > 0 {
		entries = append(entries, Entry{
			Label:  LabelHandover,
			Month:  in.HandoverYear * constants.MonthsPerYear,
			Amount: in.AdditionalHandoverPayment,
		})
	}

	for _, m := range result.EqualInstallmentMonths {
		entries = append(entries, Entry{Label: LabelEqualInstallment, Month: m, Amount: result.EqualInstallmentAmount})
	}

	entries = lo.Filter(entries, func(e Entry, _ int) bool { return e.Amount > 0 })
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(a.Month, b.Month); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})

	for i := range entries {
		entries[i].WrittenAmount, err = speller.Spell(entries[i].Amount)
		if err != nil {
			return Plan{}, errors.Wrapf(err, "spelling %s at month %d", entries[i].Label, entries[i].Month)
		}
	}

	return Plan{
		Schedule: entries,
		Totals:   Summarize(entries),
		Meta:     result.Meta,
	}, nil
}

// SetDueDates dates every entry relative to the contract date.
func (p *Plan) SetDueDates(contract time.Time) {
	for i := range p.Schedule {
		p.Schedule[i].Date = datetime.DueDate(contract, p.Schedule[i].Month)
	}
}

// Summarize counts entries and sums their amounts in decimal.
func Summarize(entries []Entry) Totals {
	total := lo.Reduce(entries, func(sum decimal.Decimal, e Entry, _ int) decimal.Decimal {
		return sum.Add(decimal.NewFromFloat(e.Amount))
	}, decimal.Zero)
	return Totals{Count: len(entries), TotalNominal: total.InexactFloat64()}
}

func expandBlock(block pricing.YearlyBlock) ([]Entry, error) {
	perYear, err := block.Frequency.InstallmentsPerYear()
	if err != nil {
		return nil, err
	}
	months, err := pricing.PaymentMonths(perYear, block.Frequency, block.YearNumber-1)
	if err != nil {
		return nil, err
	}
	amount := block.TotalNominal / float64(perYear)
	label := YearLabel(block)
	return lo.Map(months, func(m int, _ int) Entry {
		return Entry{Label: label, Month: m, Amount: amount}
	}), nil
}
