// Package validation wraps go-playground/validator for the service request
// structs. Field failures map onto each service's sentinel errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid matches every validation failure
var ErrInvalid = errors.New("invalid request")

// Error reports the first field that failed validation
type Error struct {
	Field string
	Tag   string
	Err   error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap exposes both the service sentinel and ErrInvalid to errors.Is
func (e *Error) Unwrap() []error {
	return []error{e.Err, ErrInvalid}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// notblank rejects strings made only of whitespace
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// Struct validates req. The first failing field is reported with the
// sentinel registered in fieldErrs under "field.rule" or, failing that,
// under "field" (json names).
func Struct(req any, fieldErrs map[string]error) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	fe := verrs[0]
	// slice elements report as "names[2]"
	field, _, _ := strings.Cut(fe.Field(), "[")
	sentinel, ok := fieldErrs[field+"."+fe.Tag()]
	if !ok {
		sentinel, ok = fieldErrs[field]
	}
	if !ok {
		sentinel = fmt.Errorf("%s failed the %q rule", fe.Field(), fe.Tag())
	}
	return &Error{Field: field, Tag: fe.Tag(), Err: sentinel}
}

// Var validates a single value against tag and reports failures as sentinel
func Var(value any, tag string, sentinel error) error {
	if err := validate.Var(value, tag); err != nil {
		return &Error{Tag: tag, Err: sentinel}
	}
	return nil
}
