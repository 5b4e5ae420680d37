package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	errors "github.com/frahmantamala/hr-management/internal"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report fields by their json name
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates dto against its `validate` tags and folds every failed
// field into a single VALIDATION_FAILED AppError.
func Struct(dto interface{}) *errors.AppError {
	err := instance().Struct(dto)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError(err.Error(), errors.ErrCodeValidationFailed)
	}

	details := make([]errors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, errors.ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
			Code:    string(errors.ErrCodeValidationFailed),
		})
	}

	return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
		WithDetails(errors.ValidationErrors{Errors: details})
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", fe.Field(), fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain digits only", fe.Field())
	case "alphanum":
		return fmt.Sprintf("%s must be alphanumeric", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must match the layout %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}

// TimeRange rejects ranges whose start is after their end. Equal bounds pass.
func TimeRange(startField, endField string, start, end time.Time) *errors.AppError {
	if !start.After(end) {
		return nil
	}
	return errors.ErrInvalidTimeRange.WithDetails(errors.ValidationErrors{
		Errors: []errors.ValidationError{{
			Field:   startField,
			Message: fmt.Sprintf("%s must not be after %s", startField, endField),
			Code:    string(errors.ErrCodeInvalidTimeRange),
		}},
	})
}

const DateLayout = "2006-01-02"

// ParseTime accepts RFC 3339 timestamps or bare dates and returns UTC.
func ParseTime(field, raw string) (time.Time, *errors.AppError) {
	if raw == "" {
		return time.Time{}, errors.NewValidationFieldError(field, fmt.Sprintf("%s is required", field), errors.ErrCodeValidationFailed)
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, errors.NewValidationFieldError(field, fmt.Sprintf("%s must be an RFC 3339 timestamp or a YYYY-MM-DD date", field), errors.ErrCodeValidationFailed)
}

// ParseDate accepts YYYY-MM-DD only.
func ParseDate(field, raw string) (time.Time, *errors.AppError) {
	if raw == "" {
		return time.Time{}, errors.NewValidationFieldError(field, fmt.Sprintf("%s is required", field), errors.ErrCodeValidationFailed)
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, errors.NewValidationFieldError(field, fmt.Sprintf("%s must be a YYYY-MM-DD date", field), errors.ErrCodeValidationFailed)
	}
	return t, nil
}
