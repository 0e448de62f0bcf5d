package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterValidation("latitude", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(float64)
		if !ok {
			return false
		}
		return value >= -90 && value <= 90
	})

	v.RegisterValidation("longitude", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(float64)
		if !ok {
			return false
		}
		return value >= -180 && value <= 180
	})

	v.RegisterValidation("month", func(fl validator.FieldLevel) bool {
		val := fl.Field().Int()
		return val >= 1 && val <= 12
	})

	v.RegisterValidation("year", func(fl validator.FieldLevel) bool {
		val := fl.Field().Int()
		return val >= 1900 && val <= 2200
	})

	// Tag fields are stored joined with ", "; a tag containing the
	// delimiter would not survive the round trip.
	v.RegisterValidation("tag", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return !strings.Contains(value, ", ")
	})

	return &Validator{v: v}
}

func (v *Validator) Struct(s interface{}) error {
	return v.v.Struct(s)
}

func (v *Validator) ValidationErrors(err error) validator.ValidationErrors {
	if err == nil {
		return nil
	}
	if ve, ok := err.(validator.ValidationErrors); ok {
		return ve
	}
	return nil
}
