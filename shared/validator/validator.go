package validator

import (
	"fmt"
	"io"
	"reflect"
	"resort/shared/failure"
	"strings"

	val "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/goccy/go-json"
)

var validate *val.Validate

// jsonTagName reports fields by their JSON name so messages match the request body.
func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}

	if name == "" {
		name = strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
	}

	if name == "" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, a validation failure listing every violated field is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	if err := Decode(r, data); err != nil {
		return err
	}

	return ValidateStruct(data)
}

// Decode only reads the body. Callers that combine struct rules with their own
// checks use it together with Messages.
func Decode[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	if err := decoder.Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateStruct[T any](data *T) error {
	return failure.Validation(Messages(data)) //nolint:wrapcheck
}

// Messages returns the field messages for data without wrapping them in a failure,
// so callers can append their own checks before reporting.
func Messages[T any](data *T) []string {
	err := validate.Struct(data)
	if err != nil {
		return fieldMessages(err)
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		return failure.Validation(fieldMessages(err)) //nolint:wrapcheck
	}

	return nil
}
