package validator

import (
	"github.com/go-playground/validator/v10"
)

func gradeValidator(fl validator.FieldLevel) bool {
	var grade int
	switch v := fl.Field().Interface().(type) {
	case int:
		grade = v
	default:
		ptr, ok := fl.Field().Addr().Interface().(*int)
		if !ok {
			return false
		}
		if ptr == nil {
			return true
		}
		grade = *ptr
	}
	return grade >= 1 && grade <= 5
}

func reviewTypeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	switch val {
	case "current-member":
		fallthrough
	case "prospect":
		return true
	default:
		return false
	}
}

// hourBucketValidator checks the review effort bucket, in hours.
func hourBucketValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(int)
	if !ok {
		return false
	}
	switch val {
	case 5, 8, 18:
		return true
	default:
		return false
	}
}

func reviewModeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	switch val {
	case "remote":
		fallthrough
	case "onsite":
		fallthrough
	case "other":
		return true
	default:
		return false
	}
}

func agreementLevelValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	switch val {
	case "full":
		fallthrough
	case "partial":
		fallthrough
	case "disagree":
		return true
	default:
		return false
	}
}
