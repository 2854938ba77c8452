package validation

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/iwvelando/plan-pricing/pkg/pricing"
)

type paymentRequest struct {
	Amount *float64 `json:"amount" validate:"required,gte=0"`
	Month  *float64 `json:"month" validate:"required,whole,gte=1,lte=12"`
	Type   string   `json:"type" validate:"omitempty,oneof=dp regular"`
}

type planRequest struct {
	Years     *float64         `json:"planDurationYears" validate:"required,whole,gte=1"`
	Frequency string           `json:"installmentFrequency" validate:"omitempty,frequency"`
	Handover  *float64         `json:"handoverYear" validate:"omitempty,whole,gte=1"`
	Payments  []paymentRequest `json:"firstYearPayments" validate:"dive"`
}

func ptr(v float64) *float64 { return &v }

func TestStructValid(t *testing.T) {
	req := planRequest{
		Years:     ptr(5),
		Frequency: "quarterly",
		Payments:  []paymentRequest{{Amount: ptr(1000), Month: ptr(12), Type: "dp"}},
	}
	if err := Struct(&req); err != nil {
		t.Fatalf("Struct() unexpected error = %v", err)
	}
}

func TestStructFrequencies(t *testing.T) {
	for _, f := range pricing.Frequencies {
		for _, value := range []string{string(f), " " + strings.ToUpper(string(f)) + " "} {
			req := planRequest{Years: ptr(5), Frequency: value}
			if err := Struct(&req); err != nil {
				t.Errorf("Struct() with frequency %q error = %v", value, err)
			}
		}
	}
	for _, value := range []string{"weekly", "biannually", "daily"} {
		req := planRequest{Years: ptr(5), Frequency: value}
		if err := Struct(&req); err == nil {
			t.Errorf("Struct() with frequency %q expected error", value)
		}
	}
}

func TestStructFieldErrors(t *testing.T) {
	req := planRequest{
		Frequency: "weekly",
		Handover:  ptr(1.5),
		Payments: []paymentRequest{
			{Amount: ptr(100), Month: ptr(3)},
			{Amount: ptr(-1), Month: ptr(13), Type: "balloon"},
		},
	}

	err := Struct(&req)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Struct() error = %v, want ErrValidation", err)
	}
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("Struct() error is %T, want *Error", err)
	}

	expected := []FieldError{
		{Field: "planDurationYears", Message: "Required"},
		{Field: "installmentFrequency", Message: "Invalid frequency"},
		{Field: "handoverYear", Message: "Must be integer"},
		{Field: "firstYearPayments[1].amount", Message: "Must be non-negative number"},
		{Field: "firstYearPayments[1].month", Message: "Must be <= 12"},
		{Field: "firstYearPayments[1].type", Message: `Must be one of "dp", "regular"`},
	}
	if !reflect.DeepEqual(verr.Fields, expected) {
		t.Errorf("Struct() fields = %+v, want %+v", verr.Fields, expected)
	}
}

func TestStructNotAStruct(t *testing.T) {
	err := Struct(nil)
	if err == nil {
		t.Fatal("Struct(nil) expected error but got none")
	}
	if errors.Is(err, ErrValidation) {
		t.Errorf("Struct(nil) should not be a field validation error")
	}
}
