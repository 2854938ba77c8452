// Package pricing prices real-estate installment sales plans.
//
// Given a benchmark StandardPlan (price, annual discount rate, present value)
// and a proposed payment structure (PlanInputs), the package either prices a
// discounted or restructured offer and reports its present value, or solves
// backward for the level installment amount, and possibly the total nominal
// price, that makes the structure's present value equal a target.
//
// Every function is pure: no I/O, no shared mutable state. Results are plain
// values built fresh by each call, so calls may run concurrently without
// coordination.
package pricing

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Frequency is an installment cadence.
type Frequency string

// Supported cadences.
const (
	Monthly    Frequency = "monthly"
	Quarterly  Frequency = "quarterly"
	BiAnnually Frequency = "bi-annually"
	Annually   Frequency = "annually"
)

// Frequencies lists every supported cadence in ascending period length.
var Frequencies = []Frequency{Monthly, Quarterly, BiAnnually, Annually}

// ParseFrequency converts a cadence string into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", errors.Wrapf(ErrInvalidFrequency, "frequency %q", s)
	}
	return f, nil
}

// Valid reports whether f is one of the supported cadences.
func (f Frequency) Valid() bool {
	_, _, err := f.cadence()
	return err == nil
}

// cadence returns the period length in months and the offset of the first
// installment after the schedule start.
func (f Frequency) cadence() (period, firstOffset int, err error) {
	switch f {
	case Monthly:
		return 1, 1, nil
	case Quarterly:
		return 3, 3, nil
	case BiAnnually:
		return 6, 6, nil
	case Annually:
		return 12, 12, nil
	}
	return 0, 0, errors.Wrapf(ErrInvalidFrequency, "frequency %q", string(f))
}

// InstallmentsPerYear returns 12, 4, 2 or 1.
func (f Frequency) InstallmentsPerYear() (int, error) {
	period, _, err := f.cadence()
	if err != nil {
		return 0, err
	}
	return 12 / period, nil
}

// DownPaymentType says how PlanInputs.DownPaymentValue is interpreted.
type DownPaymentType string

// Down payment interpretations.
const (
	DownPaymentAmount     DownPaymentType = "amount"
	DownPaymentPercentage DownPaymentType = "percentage"
)

// IsPercentage reports whether the down payment is a percentage of the total.
// Anything else, including the empty value, is an absolute amount.
func (t DownPaymentType) IsPercentage() bool {
	return strings.EqualFold(strings.TrimSpace(string(t)), string(DownPaymentPercentage))
}

// PaymentKind tags an itemized first-year payment.
type PaymentKind string

// Payment kinds. PaymentKindLegacyDownPayment is the short form older clients send.
const (
	PaymentKindDownPayment       PaymentKind = "downPayment"
	PaymentKindLegacyDownPayment PaymentKind = "dp"
	PaymentKindRegular           PaymentKind = "regular"
)

// IsDownPayment reports whether the entry is the itemized down payment.
func (k PaymentKind) IsDownPayment() bool {
	return k == PaymentKindDownPayment || k == PaymentKindLegacyDownPayment
}

// PaymentEntry is one itemized payment inside a split first year.
type PaymentEntry struct {
	Amount float64     `json:"amount"`
	Month  int         `json:"month"`
	Kind   PaymentKind `json:"type,omitempty"`
}

// YearlyBlock spreads TotalNominal evenly across one year under its own
// cadence. YearNumber is 1-based from the contract date.
type YearlyBlock struct {
	YearNumber   int       `json:"yearNumber,omitempty"`
	TotalNominal float64   `json:"totalNominal"`
	Frequency    Frequency `json:"frequency,omitempty"`
}

// StandardPlan is the immutable benchmark a proposal is priced against.
type StandardPlan struct {
	TotalPrice float64 `json:"totalPrice"`
	// FinancialDiscountRate is an annual percentage, e.g. 12 for 12%.
	FinancialDiscountRate float64 `json:"financialDiscountRate"`
	CalculatedPV          float64 `json:"calculatedPV"`
}

// PlanInputs describes the proposed payment structure.
type PlanInputs struct {
	SalesDiscountPercent      float64         `json:"salesDiscountPercent,omitempty"`
	DownPaymentType           DownPaymentType `json:"dpType,omitempty"`
	DownPaymentValue          float64         `json:"downPaymentValue"`
	PlanDurationYears         int             `json:"planDurationYears"`
	InstallmentFrequency      Frequency       `json:"installmentFrequency,omitempty"`
	AdditionalHandoverPayment float64         `json:"additionalHandoverPayment,omitempty"`
	HandoverYear              int             `json:"handoverYear,omitempty"`
	SplitFirstYearPayments    bool            `json:"splitFirstYearPayments"`
	FirstYearPayments         []PaymentEntry  `json:"firstYearPayments,omitempty"`
	// SubsequentYears are custom years following year one (or following the
	// split first year). Their YearNumber is assigned by position.
	SubsequentYears []YearlyBlock `json:"subsequentYears,omitempty"`
}

// Diagnostic names a reason a clamped result does not represent a consistent plan.
type Diagnostic string

// Diagnostics attached to PlanMeta when a solver had to clamp.
const (
	// DiagnosticOverCommitted: fixed commitments exceed the known total price.
	DiagnosticOverCommitted Diagnostic = "overCommittedStructure"
	// DiagnosticUnallocatedRemainder: a positive remainder exists but there
	// are no level installments to carry it.
	DiagnosticUnallocatedRemainder Diagnostic = "unallocatedRemainder"
	// DiagnosticFixedExceedsTarget: fixed components alone are worth more
	// than the target present value.
	DiagnosticFixedExceedsTarget Diagnostic = "fixedComponentsExceedTarget"
	// DiagnosticNoInstallmentsToSolve: the target needs level installments
	// but the structure leaves none.
	DiagnosticNoInstallmentsToSolve Diagnostic = "noInstallmentsToSolve"
)

// PlanMeta carries structural facts about a result.
type PlanMeta struct {
	EffectiveStartYears    int          `json:"effectiveStartYears"`
	SplitFirstYearPayments bool         `json:"splitFirstYearPayments"`
	Feasible               bool         `json:"feasible"`
	Diagnostics            []Diagnostic `json:"diagnostics,omitempty"`
}

func (m *PlanMeta) flag(d Diagnostic) {
	m.Feasible = false
	m.Diagnostics = append(m.Diagnostics, d)
}

// PlanResult is the priced plan. EqualInstallmentMonths is strictly
// increasing and has exactly NumEqualInstallments elements.
type PlanResult struct {
	TotalNominalPrice      float64  `json:"totalNominalPrice"`
	DownPaymentAmount      float64  `json:"downPaymentAmount"`
	NumEqualInstallments   int      `json:"numEqualInstallments"`
	EqualInstallmentAmount float64  `json:"equalInstallmentAmount"`
	EqualInstallmentMonths []int    `json:"equalInstallmentMonths"`
	MonthlyRate            float64  `json:"monthlyRate"`
	CalculatedPV           float64  `json:"calculatedPV"`
	Meta                   PlanMeta `json:"meta"`
}

// Err returns nil for a feasible result and otherwise the error matching the
// first diagnostic, for callers that prefer to reject clamped plans.
func (r PlanResult) Err() error {
	if r.Meta.Feasible {
		return nil
	}
	if len(r.Meta.Diagnostics) == 0 {
		return errors.Wrap(ErrTargetUnreachable, "plan marked infeasible")
	}
	d := r.Meta.Diagnostics[0]
	switch d {
	case DiagnosticOverCommitted:
		return errors.Wrapf(ErrOverCommittedStructure, "total %.2f", r.TotalNominalPrice)
	case DiagnosticUnallocatedRemainder:
		return errors.Wrapf(ErrUnallocatedRemainder, "total %.2f", r.TotalNominalPrice)
	default:
		return errors.Wrapf(ErrTargetUnreachable, "%s", string(d))
	}
}
