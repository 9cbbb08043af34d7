package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/smartclin/clinic-api/internal/apperr"
)

var validate = newValidator()

var mrnPattern = regexp.MustCompile(`^MRN-[0-9]{6}$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Medical record numbers follow the clinic's MRN-000000 format
	_ = v.RegisterValidation("mrn", func(fl validator.FieldLevel) bool {
		return mrnPattern.MatchString(fl.Field().String())
	})

	// Dates of birth must be in the past
	_ = v.RegisterValidation("past_date", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && t.Before(time.Now())
	})

	// Appointments are scheduled in the future
	_ = v.RegisterValidation("future_date", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && t.After(time.Now())
	})

	return v
}

// Struct validates an input struct and converts the first failure into a
// VALIDATION_ERROR with a readable message
func Struct(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	return apperr.Validation(firstErrorMessage(err), err)
}

func firstErrorMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "invalid input"
	}

	first := validationErrors[0]
	field := strings.ToLower(first.Field())

	switch first.Tag() {
	case "required":
		return field + " is required"
	case "mrn":
		return field + " must match MRN-000000"
	case "past_date":
		return field + " must be in the past"
	case "future_date":
		return field + " must be in the future"
	case "min":
		return field + " must be at least " + first.Param()
	case "max":
		return field + " must be at most " + first.Param()
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of " + strings.Join(strings.Fields(first.Param()), ", ")
	case "gt":
		return field + " must be greater than " + first.Param()
	default:
		return field + " is invalid"
	}
}
