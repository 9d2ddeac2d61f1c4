package service

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/curato/curation-client/internal/core/domain"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)
)

// inputValidator checks user input before any network call. Field names in
// errors come from the "label" struct tag.
type inputValidator struct {
	v *validator.Validate
}

func newInputValidator() *inputValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return &inputValidator{v: v}
}

// Validate returns the first failing field as a *domain.ValidationError.
func (iv *inputValidator) Validate(i any) error {
	err := iv.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fieldError(ve[0])
	}
	return err
}

func fieldError(fe validator.FieldError) *domain.ValidationError {
	var msg string
	switch fe.Tag() {
	case "notblank", "required":
		msg = fe.Field() + " is required"
	case "emailshape":
		msg = "Please enter a valid email address"
	case "phone":
		msg = "Please enter a valid phone number"
	default:
		msg = fe.Field() + " is invalid"
	}
	return &domain.ValidationError{Field: fe.StructField(), Message: msg}
}
