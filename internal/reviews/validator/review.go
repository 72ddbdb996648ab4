package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"smarthost/pkg/logger"
	"smarthost/pkg/model"
	"smarthost/pkg/sanitizer"

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

type ReviewValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReviewValidator(log *logger.Logger) *ReviewValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &ReviewValidator{
		validate: v,
		logger:   log,
	}
}

func (v *ReviewValidator) ValidateRequest(req *model.ReviewRequest) error {
	req.Comment = sanitizer.SanitizeText(req.Comment)

	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var out ValidationErrors
	for _, fe := range validationErrs {
		message := fe.Error()
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fe.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", fe.Field())
		case "min", "max":
			if fe.Field() == "rating" {
				message = "rating must be between 1 and 5"
			} else {
				message = fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
			}
		}
		out = append(out, ValidationError{Field: fe.Field(), Message: message})
	}
	v.logger.Debug("review validation failed", "errors", len(out))
	return out
}
