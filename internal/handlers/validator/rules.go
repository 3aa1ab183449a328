package validator

import "github.com/go-playground/validator/v10"

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func NewReviewValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("grade", gradeValidator),
		},
		{
			Rule: registerFn("review_type", reviewTypeValidator),
		},
		{
			Rule: registerFn("hour_bucket", hourBucketValidator),
		},
		{
			Rule: registerFn("review_mode", reviewModeValidator),
		},
		{
			Rule: registerFn("agreement_level", agreementLevelValidator),
		},
	}
}
