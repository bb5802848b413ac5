package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("account_id", func(fl validator.FieldLevel) bool {
		return IsValidAccountID(fl.Field().String())
	})
	validate.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "" && strings.Trim(s, "0123456789") == ""
	})
}

// Struct validates a request body by its struct tags and returns the field
// errors keyed by field name, or nil when the body is valid.
func Struct(req interface{}) map[string]string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"request": err.Error()}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "account_id":
		return "must be a valid account id"
	case "digits":
		return "must be a base-10 integer"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
