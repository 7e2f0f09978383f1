package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// geojson_point accepts only the literal "Point" type tag used by
	// explicit location payloads.
	_ = validate.RegisterValidation("geojson_point", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "Point"
	})
}

// Validate runs struct tag validation.
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator exposes the shared instance for custom configuration.
func GetValidator() *validator.Validate {
	return validate
}
