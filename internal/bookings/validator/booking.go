package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"smarthost/pkg/logger"
	"smarthost/pkg/model"
	"smarthost/pkg/search"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// ValidateRequest checks the payload and returns the parsed stay dates.
// today is the current calendar day; check-in may not be earlier.
func (v *BookingValidator) ValidateRequest(req *model.BookingRequest, today time.Time) (time.Time, time.Time, error) {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return time.Time{}, time.Time{}, v.translateValidationErrors(validationErrs)
		}
		return time.Time{}, time.Time{}, err
	}

	checkIn, err := time.Parse(search.DateLayout, req.CheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, ValidationErrors{{Field: "checkIn", Message: "checkIn must be a date in YYYY-MM-DD format"}}
	}
	checkOut, err := time.Parse(search.DateLayout, req.CheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, ValidationErrors{{Field: "checkOut", Message: "checkOut must be a date in YYYY-MM-DD format"}}
	}

	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, ValidationErrors{{Field: "checkOut", Message: "checkOut must be after checkIn"}}
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if checkIn.Before(day) {
		return time.Time{}, time.Time{}, ValidationErrors{{Field: "checkIn", Message: "checkIn cannot be in the past"}}
	}

	return checkIn, checkOut, nil
}

// ValidateCapacity checks the party fits the property.
func (v *BookingValidator) ValidateCapacity(guests int, property *model.Property) error {
	if guests > property.MaxGuests {
		return ValidationErrors{{
			Field:   "guestCount",
			Message: fmt.Sprintf("guestCount (%d) exceeds the property's maximum of %d guests", guests, property.MaxGuests),
		}}
	}
	return nil
}

// Validate checks a fully built booking before it is stored.
func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "datetime":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "gtfield":
			message = fmt.Sprintf("%s must be after %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
