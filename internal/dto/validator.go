package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var clockLayouts = []string{"15:04:05", "15:04"}

// NormalizeClockTime 将 HH:MM 或 HH:MM:SS 规范化为 HH:MM:SS
func NormalizeClockTime(s string) (string, bool) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil && len(s) == len(layout) {
			return t.Format("15:04:05"), true
		}
	}
	return "", false
}

// ValidateClockTime clocktime 校验规则
func ValidateClockTime(fl validator.FieldLevel) bool {
	_, ok := NormalizeClockTime(fl.Field().String())
	return ok
}

// RegisterValidations 向 validator 注册自定义规则
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("clocktime", ValidateClockTime)
}
