package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)

// Validator validates request structs.
type Validator interface {
	Validate(s any) error
}

type DefaultValidator struct {
	v *validator.Validate
}

// FieldError is one failed rule, keyed by the JSON name of the field.
type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// New creates a validator that reports JSON field names and knows the
// "phone" and "status" rules.
func New() (*DefaultValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		return nil, fmt.Errorf("register phone validator: %w", err)
	}
	if err := v.RegisterValidation("status", validateStatus); err != nil {
		return nil, fmt.Errorf("register status validator: %w", err)
	}
	return &DefaultValidator{v: v}, nil
}

// MustNew is New for package-level initialisation.
func MustNew() *DefaultValidator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

func (v DefaultValidator) Validate(s any) error {
	return v.v.Struct(s)
}

// Fields flattens validation errors into FieldErrors. It returns nil when
// err is not a validation error.
func Fields(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Description: Message(fe)})
	}
	return out
}

func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "phone":
		return "must be exactly 10 digits"
	case "status":
		return fmt.Sprintf("invalid status: %v", fe.Value())
	case "dive":
		return "contains an invalid entry"
	default:
		return "is invalid"
	}
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// validateStatus accepts any value with a Valid() bool method returning true.
func validateStatus(fl validator.FieldLevel) bool {
	type enum interface {
		Valid() bool
	}
	value, ok := fl.Field().Interface().(enum)
	if !ok {
		return false
	}
	return value.Valid()
}
