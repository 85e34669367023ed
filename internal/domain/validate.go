package domain

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidParameter is the sentinel wrapped by every *InvalidParameterError.
var ErrInvalidParameter = errors.New("invalid impact parameter")

// FieldViolation describes one rejected field.
type FieldViolation struct {
	Field  string `json:"field"`
	Rule   string `json:"rule"`
	Value  any    `json:"-"`
	Reason string `json:"reason"`
}

// InvalidParameterError reports every field of an ImpactParams that falls
// outside the model's domain.
type InvalidParameterError struct {
	Violations []FieldViolation
}

func (e *InvalidParameterError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Reason
	}
	return fmt.Sprintf("%s: %s", ErrInvalidParameter, strings.Join(parts, "; "))
}

func (e *InvalidParameterError) Unwrap() error { return ErrInvalidParameter }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// NaN already fails the range rules; finite also catches ±Inf.
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

// Validate checks params against the model's input domain.
func Validate(p ImpactParams) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate impact params: %w", err)
	}

	out := &InvalidParameterError{Violations: make([]FieldViolation, 0, len(verrs))}
	for _, fe := range verrs {
		out.Violations = append(out.Violations, FieldViolation{
			Field:  fe.Field(),
			Rule:   fe.Tag(),
			Value:  fe.Value(),
			Reason: violationReason(fe),
		})
	}
	return out
}

func violationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "finite":
		return "must be a finite number"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "failed " + fe.Tag() + " check"
	}
}
