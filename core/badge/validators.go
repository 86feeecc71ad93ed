package badge

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-lms/core"
)

var (
	criteriaTypeTag  = "criteriatype"
	criteriaTypeText = "invalid criteria type"
)

// InitValidators registers the badge validation tags on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(criteriaTypeTag, criteriaTypeValidation)
	core.RegisterCustomTranslation(validate, translator, criteriaTypeTag, criteriaTypeText)
}

func criteriaTypeValidation(fl validator.FieldLevel) bool {
	ct, ok := fl.Field().Interface().(CriteriaType)
	return ok && ct.IsValid()
}
