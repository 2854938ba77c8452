package validation

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/plan-pricing/pkg/pricing"
	"github.com/samber/lo"
)

// ErrValidation marks request validation failures.
var ErrValidation = errors.New("validation failed")

// FieldError reports one invalid field by its JSON path, e.g.
// "firstYearPayments[0].month".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error holds every field that failed validation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := lo.Map(e.Fields, func(f FieldError, _ int) string { return f.Field + ": " + f.Message })
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match ErrValidation.
func (e *Error) Unwrap() error { return ErrValidation }

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Besides the built-in tags it knows
// "frequency" (a valid installment cadence) and "whole" (an integral number),
// and reports fields by their json names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation("frequency", func(fl validator.FieldLevel) bool {
			f := pricing.Frequency(strings.ToLower(strings.TrimSpace(fl.Field().String())))
			return lo.Contains(pricing.Frequencies, f)
		})
		_ = validate.RegisterValidation("whole", func(fl validator.FieldLevel) bool {
			v := fl.Field().Float()
			return !math.IsInf(v, 0) && v == math.Trunc(v)
		})
	})
	return validate
}

// Struct validates s and returns an *Error listing the failed fields, or nil.
// Field paths are relative to s.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validating request")
	}
	return &Error{Fields: lo.Map(verrs, func(fe validator.FieldError, _ int) FieldError {
		return FieldError{Field: fieldPath(fe), Message: message(fe)}
	})}
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "whole":
		return "Must be integer"
	case "frequency":
		return "Invalid frequency"
	case "gte", "min":
		if fe.Param() == "0" {
			return "Must be non-negative number"
		}
		return "Must be >= " + fe.Param()
	case "lte", "max":
		return "Must be <= " + fe.Param()
	case "oneof":
		options := lo.Map(strings.Fields(fe.Param()), func(o string, _ int) string { return fmt.Sprintf("%q", o) })
		return "Must be one of " + strings.Join(options, ", ")
	}
	return fmt.Sprintf("Failed %s validation", fe.Tag())
}
