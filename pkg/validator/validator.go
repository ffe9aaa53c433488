package validator

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v *validator.Validate

func init() {
	v = validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// Validate checks struct tags and returns field -> code, or nil when valid.
func Validate(i any) map[string]string {
	err := v.Struct(i)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return map[string]string{"_error": "validation_failed"}
	}

	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Namespace()] = mapTagToCode(e.Tag())
	}
	return out
}

var tagMap = map[string]string{
	"required": "required",
	"notblank": "required",
	"email":    "invalid_email",
	"oneof":    "invalid_choice",
	"min":      "too_short",
	"max":      "too_long",
}

func mapTagToCode(tag string) string {
	if code, ok := tagMap[tag]; ok {
		return code
	}
	return "invalid"
}
