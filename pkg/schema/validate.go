package schema

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate checks converted leaf values against Variable.Validate tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

func checkValue(value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fieldError := fieldErrors[0]
		rule := checkRule(fieldError)
		if fieldError.Tag() == "required" {
			return fixedError(rule)
		}
		return &valueError{
			msg:      fmt.Sprintf("%s, got '%v'", rule, fieldError.Value()),
			redacted: rule,
		}
	}
	return err
}

// checkRule renders the rule a validator failure broke, without the value.
func checkRule(fieldError validator.FieldError) string {
	param := fieldError.Param()

	switch fieldError.Tag() {
	case "required":
		return "a value is required"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", param)
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", param)
	case "gt":
		return fmt.Sprintf("must be greater than %s", param)
	case "lt":
		return fmt.Sprintf("must be less than %s", param)
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", param)
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "hostname":
		return "must be a valid hostname"
	case "hostname_port":
		return "must be a valid host:port"
	case "ip":
		return "must be a valid IP address"
	default:
		return fmt.Sprintf("failed validation '%s'", fieldError.Tag())
	}
}
