package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("param"), ",", 2)[0]
			if name == "-" || name == "" {
				return toKebabCase(fld.Name)
			}
			return name
		})
	})
	return validate
}

// Params validates s and reports the first failing field as an
// INVALID_PARAMETER error keyed under base. All failures are listed in the
// error details.
func Params(base config.Path, s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.InvalidParameter(string(base), "validation failed").WithCause(err)
	}

	fields := make(map[string]string, len(validationErrors))
	first := validationErrors[0]
	for _, e := range validationErrors {
		fields[string(base.Push(e.Field()))] = formatValidationError(e)
	}

	return errors.InvalidParameter(string(base.Push(first.Field())), formatValidationError(first)).
		WithDetail("fields", fields).
		WithDetail("value", first.Value())
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be >= " + e.Param()
	case "gt":
		return "must be > " + e.Param()
	case "lte":
		return "must be <= " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

// toKebabCase converts a field name to kebab-case.
func toKebabCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('-')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32) // lowercase
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
