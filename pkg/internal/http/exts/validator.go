package exts

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validation = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name, _, _ := strings.Cut(field.Tag.Get("form"), ","); len(name) > 0 && name != "-" {
			return name
		}
		return field.Name
	})
	return v
}

// FormErrors maps form field names onto messages.
type FormErrors map[string]string

func (v FormErrors) Add(field, message string) {
	if _, ok := v[field]; !ok {
		v[field] = message
	}
}

// BindForm parses the submitted form into out and validates it. Forms with
// a Normalize method get it called in between.
// Problems are reported per field instead of as an error so the caller
// can render the form again.
func BindForm(c *fiber.Ctx, out any) FormErrors {
	errs := FormErrors{}
	if err := c.BodyParser(out); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		errs.Add("__all__", err.Error())
		return errs
	}

	if normalizer, ok := out.(interface{ Normalize() }); ok {
		normalizer.Normalize()
	}

	if err := validation.Struct(out); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) {
			for _, field := range fields {
				errs.Add(fieldName(field), describeFieldError(field))
			}
		} else {
			errs.Add("__all__", err.Error())
		}
	}
	return errs
}

func fieldName(field validator.FieldError) string {
	return strings.ToLower(field.Field())
}

func describeFieldError(field validator.FieldError) string {
	switch field.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return "ensure this value has at most " + field.Param() + " characters"
	case "min":
		return "ensure this value has at least " + field.Param() + " characters"
	default:
		return "enter a valid value"
	}
}
