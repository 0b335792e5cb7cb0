package utils

import (
	"productivity/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators adds the task enum and weekday rules to v.
func RegisterCustomValidators(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"status":     ValidateStatusRule,
		"recurrence": ValidateRecurrenceRule,
		"weekday":    ValidateWeekdayRule,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// NewValidator returns a validator carrying the custom task rules.
func NewValidator() *validator.Validate {
	v := validator.New()
	if err := RegisterCustomValidators(v); err != nil {
		panic(err)
	}
	return v
}

// InitValidator registers the custom rules on gin's binding engine.
func InitValidator() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return RegisterCustomValidators(v)
	}
	return nil
}

func ValidateStatusRule(fl validator.FieldLevel) bool {
	return model.Status(fl.Field().String()).Valid()
}

func ValidateRecurrenceRule(fl validator.FieldLevel) bool {
	return model.Recurrence(fl.Field().String()).Valid()
}

// ValidateWeekdayRule accepts 1 (Sunday) through 7 (Saturday).
func ValidateWeekdayRule(fl validator.FieldLevel) bool {
	day := fl.Field().Int()
	return day >= 1 && day <= 7
}
