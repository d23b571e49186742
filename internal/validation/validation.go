package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
)

// Op selects which rule set applies to a payload.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Errors accumulates per-field validation messages in request order.
type Errors struct {
	messages []string
}

func (e *Errors) Add(field, message string) {
	e.messages = append(e.messages, fmt.Sprintf("%s: %s", field, message))
}

func (e *Errors) Empty() bool {
	return len(e.messages) == 0
}

func (e *Errors) Messages() []string {
	return e.messages
}

// Check runs a cross-field rule after the per-field pass. Checks only
// see payloads whose individual fields already passed.
type Check func(errs *Errors)

// Apply validates a payload struct for the given operation.
//
// Payload fields are pointers; a nil pointer means "not provided". On
// create, fields tagged `create:"required"` must be present. On update,
// absent fields are skipped, which makes every rule optional-on-update
// without a second rule set. Present fields are validated against the
// field's `validate` tag either way.
//
// Returns a VALIDATION_ERROR carrying every collected "field: message"
// detail, or nil when the payload is clean.
func Apply(op Op, payload any, checks ...Check) error {
	value := reflect.ValueOf(payload)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return pkgerrors.New(pkgerrors.CodeInternal, "validation payload must be a struct")
	}

	var errs Errors
	structType := value.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}

		name := fieldName(field)
		fieldValue := value.Field(i)

		if fieldValue.Kind() == reflect.Pointer && fieldValue.IsNil() {
			if op == OpCreate && field.Tag.Get("create") == "required" {
				errs.Add(name, "is required")
			}
			continue
		}

		rules := field.Tag.Get("validate")
		if rules == "" {
			continue
		}

		target := fieldValue
		if target.Kind() == reflect.Pointer {
			target = target.Elem()
		}
		if err := validate.Var(target.Interface(), rules); err != nil {
			if fieldErrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range fieldErrs {
					errs.Add(name, message(fe))
				}
			} else {
				errs.Add(name, "is invalid")
			}
		}
	}

	// Cross-field rules only run on structurally sound payloads so they
	// never dereference fields already reported above.
	if errs.Empty() {
		for _, check := range checks {
			check(&errs)
		}
	}

	if errs.Empty() {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(errs.Messages())
}

func fieldName(field reflect.StructField) string {
	tag := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if tag == "" || tag == "-" {
		return field.Name
	}
	return tag
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "e164":
		return "must be a valid phone number"
	case "url":
		return "must be a valid URL"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}
