package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps json field names to the labels shown on the contact form
var FieldLabels = map[string]string{
	"name":    "お名前",
	"email":   "メールアドレス",
	"message": "メッセージ",
}

// New returns a validator that reports fields by their json tag, so
// messages match the names the form submits.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: 入力必須です", label)
	case "max":
		return fmt.Sprintf("%s: %s文字以内で入力してください", label, e.Param())
	case "email":
		return fmt.Sprintf("%s: 形式が正しくありません", label)
	default:
		return fmt.Sprintf("%s: 入力内容が正しくありません (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}
