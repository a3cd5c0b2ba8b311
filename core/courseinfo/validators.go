package courseinfo

import (
	"reflect"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/davalosk/ezu/core"
)

var (
	fourDigitYearTag  = "fourdigityear"
	fourDigitYearText = "year must have four digits"
)

// InitValidators registers the course info validation tags on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(fourDigitYearTag, fourDigitYearValidation)
	core.RegisterCustomTranslation(validate, translator, fourDigitYearTag, fourDigitYearText)
}

func fourDigitYearValidation(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int16, reflect.Int32, reflect.Int64:
		y := fl.Field().Int()
		return y >= 1000 && y <= 9999
	}
	return false
}
