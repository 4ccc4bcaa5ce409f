package services

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"

	"tasktracker/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Messages use the human label of a field instead of its Go name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	_ = v.RegisterValidation("duedate", func(fl validator.FieldLevel) bool {
		return validDueDate(fl.Field().String())
	})
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return model.ValidStatus(fl.Field().String())
	})
	_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return model.ValidPriority(fl.Field().String())
	})
	return v
}

// validateInput runs struct validation and turns the first failure into a
// validation error with a readable message.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate input: %w", err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return validationError("%s is required", fe.Field())
	case "min":
		return validationError("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return validationError("%s must be %s characters or less", fe.Field(), fe.Param())
	case "email":
		return validationError("Please enter a valid email address")
	case "status":
		return validationError("%s must be one of: %s, %s, %s", fe.Field(), model.StatusTodo, model.StatusInProgress, model.StatusDone)
	case "priority":
		return validationError("%s must be one of: %s, %s, %s", fe.Field(), model.PriorityLow, model.PriorityMedium, model.PriorityHigh)
	case "duedate":
		return validationError("%s must be a date (YYYY-MM-DD) or an RFC 3339 timestamp", fe.Field())
	}
	return validationError("%s is invalid", fe.Field())
}

func validDueDate(s string) bool {
	if s == "" {
		return true
	}
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}
