package validator

import (
	"medicore/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := entity.ParseClock(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("slot", func(fl validator.FieldLevel) bool {
		return entity.IsSlotTime(fl.Field().String())
	})
	v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := entity.ParseDate(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, err := entity.ParseWeekday(fl.Field().String())
		return err == nil
	})
	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "hhmm", "slot":
				errors[field] = field + " must be a time in HH:MM format"
			case "isodate":
				errors[field] = field + " must be a date in YYYY-MM-DD format"
			case "weekday":
				errors[field] = field + " must be one of Mon, Tue, Wed, Thu, Fri, Sat, Sun"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
