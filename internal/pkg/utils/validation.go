package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("dial", validateDialNumber)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateDialNumber(fl validator.FieldLevel) bool {
	return IsDialNumber(fl.Field().String())
}
