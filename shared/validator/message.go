package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":    "{field} is required",
		"notblank":    "{field} is required",
		"gte":         "{field} must be greater than or equal to {param}",
		"lte":         "{field} must be less than or equal to {param}",
		"oneof":       "{field} must be one of {param}",
		"max":         "{field} must be less than or equal to {param}",
		"min":         "{field} must be greater than or equal to {param}",
		"email":       "{field} must be a valid email address",
		"datetime":    "{field} must be a date in the format {param}",
		"uuid":        "{field} must be a valid uuid",
		"dive":        "{field} contains an invalid value",
	}
)

func format(valErr val.FieldError) string {
	errStr := messages[valErr.Tag()]
	if errStr == "" {
		return valErr.Error()
	}

	field := valErr.Field()
	if field == "" {
		field = "value"
	}

	errStr = strings.ReplaceAll(errStr, "{field}", field)
	errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

	return errStr
}

// fieldMessages returns one message per violated field, in struct order.
func fieldMessages(err error) []string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		seen := make(map[string]struct{}, len(valErrors))
		msgs := make([]string, 0, len(valErrors))

		for _, valErr := range valErrors {
			if _, ok := seen[valErr.Namespace()]; ok {
				continue
			}

			seen[valErr.Namespace()] = struct{}{}
			msgs = append(msgs, format(valErr))
		}

		return msgs
	}

	return []string{err.Error()}
}
