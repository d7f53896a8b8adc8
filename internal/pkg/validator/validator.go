package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	urlRegex   = regexp.MustCompile(`^https?:\/\/(www\.)?[-a-zA-Z0-9@:%._\+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_\+.~#?&//=]*)$`)
)

// IsValidEmail checks if the email format is valid
func IsValidEmail(email string) bool {
	if strings.TrimSpace(email) == "" {
		return false
	}
	return emailRegex.MatchString(email)
}

// IsValidPhone checks for an E.164-style number; spaces and dashes are ignored
func IsValidPhone(phone string) bool {
	phone = strings.NewReplacer(" ", "", "-", "").Replace(phone)
	if phone == "" {
		return false
	}
	return phoneRegex.MatchString(phone)
}

// IsValidURL checks if the URL format is valid
func IsValidURL(url string) bool {
	if strings.TrimSpace(url) == "" {
		return false
	}
	return urlRegex.MatchString(url)
}

// Required fails with a field error when value is blank.
func Required(field, label, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.Invalid(field, label+" is required")
	}
	return nil
}

// MaxLength fails when value is longer than max characters.
func MaxLength(field, label, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return apperrors.Invalid(field, label+" is too long")
	}
	return nil
}

// First returns the first non-nil error, letting callers list checks in field order.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
