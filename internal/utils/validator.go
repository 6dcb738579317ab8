package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/henley-workshops/survey-service/internal/models"
)

// Custom validation functions

func ValidateSurveyType(fl validator.FieldLevel) bool {
	return models.SurveyType(fl.Field().String()).Valid()
}

// NewValidator builds a validator with the survey-specific rules registered
// and json tag names used in error messages.
func NewValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterValidation("survey_type", ValidateSurveyType)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}
