package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/plan-pricing/pkg/datetime"
	"github.com/iwvelando/plan-pricing/pkg/pricing"
	"github.com/iwvelando/plan-pricing/pkg/validation"
	"github.com/samber/lo"
)

// pricingRequest is the body of /api/calculate. Numbers are pointers so a
// missing field can be told apart from zero.
type pricingRequest struct {
	Mode    string          `json:"mode"`
	StdPlan *stdPlanRequest `json:"stdPlan"`
	Inputs  *inputsRequest  `json:"inputs"`
}

// generatePlanRequest is the body of /api/generate-plan.
type generatePlanRequest struct {
	pricingRequest
	Language                  string `json:"language"`
	LanguageForWrittenAmounts string `json:"languageForWrittenAmounts"`
	Currency                  string `json:"currency"`
	// BaseDate (or its alias ContractDate) dates the schedule entries.
	BaseDate     string `json:"baseDate"`
	ContractDate string `json:"contractDate"`
}

// contractDate parses the optional contract date. ok is false when none was sent.
func (req generatePlanRequest) contractDate() (date time.Time, ok bool, apiErr *apiError) {
	field, value := "baseDate", strings.TrimSpace(req.BaseDate)
	if value == "" {
		field, value = "contractDate", strings.TrimSpace(req.ContractDate)
	}
	if value == "" {
		return time.Time{}, false, nil
	}
	date, err := datetime.ParseDate(value)
	if err != nil {
		return time.Time{}, false, &apiError{
			status:  http.StatusUnprocessableEntity,
			message: "Invalid inputs",
			details: []validation.FieldError{{Field: field, Message: "Must be a date (YYYY-MM-DD)"}},
		}
	}
	return date, true, nil
}

type stdPlanRequest struct {
	TotalPrice            *float64 `json:"totalPrice"`
	FinancialDiscountRate *float64 `json:"financialDiscountRate"`
	CalculatedPV          *float64 `json:"calculatedPV"`
}

type inputsRequest struct {
	SalesDiscountPercent      *float64              `json:"salesDiscountPercent" validate:"omitempty,gte=0,lte=100"`
	DpType                    string                `json:"dpType" validate:"omitempty,oneof=amount percentage"`
	DownPaymentValue          *float64              `json:"downPaymentValue" validate:"omitempty,gte=0"`
	PlanDurationYears         *float64              `json:"planDurationYears" validate:"required,whole,gte=1,lte=100"`
	InstallmentFrequency      string                `json:"installmentFrequency" validate:"omitempty,frequency"`
	AdditionalHandoverPayment *float64              `json:"additionalHandoverPayment" validate:"omitempty,gte=0"`
	HandoverYear              *float64              `json:"handoverYear" validate:"omitempty,whole,gte=1,lte=100"`
	SplitFirstYearPayments    bool                  `json:"splitFirstYearPayments"`
	FirstYearPayments         []paymentEntryRequest `json:"firstYearPayments" validate:"dive"`
	SubsequentYears           []yearlyBlockRequest  `json:"subsequentYears" validate:"dive"`
}

type paymentEntryRequest struct {
	Amount *float64 `json:"amount" validate:"required,gte=0"`
	Month  *float64 `json:"month" validate:"required,whole,gte=1,lte=12"`
	Type   string   `json:"type" validate:"omitempty,oneof=dp regular downPayment"`
}

type yearlyBlockRequest struct {
	TotalNominal *float64 `json:"totalNominal" validate:"required,gte=0"`
	Frequency    string   `json:"frequency" validate:"omitempty,frequency"`
}

// apiError is a failure to report to the client.
type apiError struct {
	status  int
	message string
	details any
}

func allowedModes() []string {
	return lo.Map(pricing.Modes(), func(m pricing.Mode, _ int) string { return m.String() })
}

// check validates the request and converts it into engine values.
func (req pricingRequest) check() (pricing.Mode, pricing.StandardPlan, pricing.PlanInputs, *apiError) {
	mode, err := pricing.ParseMode(req.Mode)
	if err != nil {
		return 0, pricing.StandardPlan{}, pricing.PlanInputs{}, &apiError{
			status:  http.StatusBadRequest,
			message: "Invalid or missing mode",
			details: map[string][]string{"allowedModes": allowedModes()},
		}
	}

	std, apiErr := req.StdPlan.standardPlan()
	if apiErr != nil {
		return 0, pricing.StandardPlan{}, pricing.PlanInputs{}, apiErr
	}

	if req.Inputs == nil {
		return 0, pricing.StandardPlan{}, pricing.PlanInputs{}, &apiError{
			status:  http.StatusBadRequest,
			message: "inputs must be an object",
		}
	}
	if err := validation.Struct(req.Inputs); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return 0, pricing.StandardPlan{}, pricing.PlanInputs{}, &apiError{
				status:  http.StatusUnprocessableEntity,
				message: "Invalid inputs",
				details: verr.Fields,
			}
		}
		return 0, pricing.StandardPlan{}, pricing.PlanInputs{}, &apiError{
			status:  http.StatusInternalServerError,
			message: err.Error(),
		}
	}

	return mode, std, req.Inputs.planInputs(), nil
}

func (s *stdPlanRequest) standardPlan() (pricing.StandardPlan, *apiError) {
	bad := func(msg string) (pricing.StandardPlan, *apiError) {
		return pricing.StandardPlan{}, &apiError{status: http.StatusBadRequest, message: msg}
	}
	switch {
	case s == nil:
		return bad("stdPlan must be an object with totalPrice, financialDiscountRate, calculatedPV")
	case s.TotalPrice == nil || *s.TotalPrice < 0:
		return bad("stdPlan.totalPrice must be a non-negative number")
	case s.FinancialDiscountRate == nil:
		return bad("stdPlan.financialDiscountRate must be a number (percent)")
	case s.CalculatedPV == nil || *s.CalculatedPV < 0:
		return bad("stdPlan.calculatedPV must be a non-negative number")
	}
	return pricing.StandardPlan{
		TotalPrice:            *s.TotalPrice,
		FinancialDiscountRate: *s.FinancialDiscountRate,
		CalculatedPV:          *s.CalculatedPV,
	}, nil
}

func (in *inputsRequest) planInputs() pricing.PlanInputs {
	out := pricing.PlanInputs{
		SalesDiscountPercent:      lo.FromPtr(in.SalesDiscountPercent),
		DownPaymentType:           pricing.DownPaymentType(in.DpType),
		DownPaymentValue:          lo.FromPtr(in.DownPaymentValue),
		PlanDurationYears:         int(lo.FromPtr(in.PlanDurationYears)),
		InstallmentFrequency:      pricing.Frequency(in.InstallmentFrequency),
		AdditionalHandoverPayment: lo.FromPtr(in.AdditionalHandoverPayment),
		HandoverYear:              int(lo.FromPtr(in.HandoverYear)),
		SplitFirstYearPayments:    in.SplitFirstYearPayments,
	}
	out.FirstYearPayments = lo.Map(in.FirstYearPayments, func(p paymentEntryRequest, _ int) pricing.PaymentEntry {
		return pricing.PaymentEntry{
			Amount: lo.FromPtr(p.Amount),
			Month:  int(lo.FromPtr(p.Month)),
			Kind:   pricing.PaymentKind(p.Type),
		}
	})
	out.SubsequentYears = lo.Map(in.SubsequentYears, func(y yearlyBlockRequest, _ int) pricing.YearlyBlock {
		return pricing.YearlyBlock{
			TotalNominal: lo.FromPtr(y.TotalNominal),
			Frequency:    pricing.Frequency(y.Frequency),
		}
	})
	return out
}

// engineError maps a pricing failure to a response status and a metric label.
func engineError(err error) (status int, errorType string) {
	switch {
	case errors.Is(err, pricing.ErrUnknownMode):
		return http.StatusBadRequest, "unknown_mode"
	case errors.Is(err, pricing.ErrInvalidFrequency):
		return http.StatusUnprocessableEntity, "invalid_frequency"
	case errors.Is(err, pricing.ErrUnsolvableDownPaymentPercentage):
		return http.StatusUnprocessableEntity, "unsolvable_down_payment"
	}
	return http.StatusInternalServerError, "internal"
}
