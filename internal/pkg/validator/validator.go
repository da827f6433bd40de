package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate  *validator.Validate
	yearRegex = regexp.MustCompile(`^[0-9]{4}$`)
)

func init() {
	validate = validator.New()
	// год в колонке CSV вида "2025_risk"
	_ = validate.RegisterValidation("risk_year", func(fl validator.FieldLevel) bool {
		return yearRegex.MatchString(fl.Field().String())
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// ValidateYear проверяет строку года отдельно от структуры
func ValidateYear(year string) error {
	return validate.Var(year, "required,risk_year")
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
