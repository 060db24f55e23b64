package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/nullable"
	"github.com/shopspring/decimal"
)

// phoneRegex accepts an optional leading plus and country code followed by 9 to 15 digits
var phoneRegex = regexp.MustCompile(`^\+?1?\d{9,15}$`)

var (
	validate *validator.Validate
	mu       sync.Mutex
)

func NewValidator() *validator.Validate {
	mu.Lock()
	defer mu.Unlock()

	v := validator.New()

	// report fields by their json name so clients can map errors to inputs
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || phoneRegex.MatchString(value)
	})

	// let numeric and date rules (gte, lte, required) see through the wrapper types
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch value := field.Interface().(type) {
		case decimal.Decimal:
			return value.InexactFloat64()
		case decimal.NullDecimal:
			if !value.Valid {
				return nil
			}
			return value.Decimal.InexactFloat64()
		case types.Date:
			return value.Time
		// pointers keep omitempty from skipping a zero that was actually sent
		case nullable.Nullable[decimal.Decimal]:
			if !value.IsSpecified() || value.IsNull() {
				return (*float64)(nil)
			}
			f := value.MustGet().InexactFloat64()
			return &f
		case nullable.Nullable[int]:
			if !value.IsSpecified() || value.IsNull() {
				return (*int)(nil)
			}
			n := value.MustGet()
			return &n
		}
		return nil
	}, decimal.Decimal{}, decimal.NullDecimal{}, types.Date{},
		nullable.Nullable[decimal.Decimal]{}, nullable.Nullable[int]{})

	validate = v
	return validate
}

// GetValidator returns the shared validator, creating it on first use
func GetValidator() *validator.Validate {
	mu.Lock()
	v := validate
	mu.Unlock()
	if v == nil {
		return NewValidator()
	}
	return v
}

// IsValidPhone reports whether the value matches the accepted phone format
func IsValidPhone(value string) bool {
	return phoneRegex.MatchString(value)
}

func ValidateRequest(req interface{}) error {
	if err := GetValidator().Struct(req); err != nil {
		details := make(map[string]any)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, fe := range validateErrs {
				details[fe.Field()] = fieldMessage(fe)
			}
		}
		return ierr.WithError(err).
			WithHint("Request validation failed").
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "phone":
		return "Phone number must be entered in the format: '+999999999'. Up to 15 digits allowed."
	case "min":
		return fmt.Sprintf("Ensure this value is at least %s.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "eqfield":
		return fmt.Sprintf("Must match %s.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}
