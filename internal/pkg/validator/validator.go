package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries the single rule message a service surfaces
// to its caller. Handlers map it to a 400 with the message verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewError wraps a rule message in a ValidationError.
func NewError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report violations under the json field name, not the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate checks struct fields and returns violation messages in
// field-declaration order. Nil means valid.
func Validate(v interface{}) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	// A non-struct value makes go-playground return an
	// *InvalidValidationError instead of field errors.
	var ferrs validator.ValidationErrors
	if !errors.As(err, &ferrs) {
		return []string{err.Error()}
	}

	var msgs []string
	for _, fe := range ferrs {
		msgs = append(msgs, message(fe))
	}
	return msgs
}

// First returns only the first violation in declaration order, or ""
// when the value is valid. Services surface exactly one message.
func First(v interface{}) string {
	msgs := Validate(v)
	if len(msgs) == 0 {
		return ""
	}
	return msgs[0]
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(strings.Fields(fe.Param()), ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be %s or greater", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
