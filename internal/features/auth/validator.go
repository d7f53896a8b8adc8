package auth

import (
	"strings"
	"unicode/utf8"

	"github.com/xyz-asif/safetrip/internal/pkg/validator"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
)

const (
	minPasswordLength = 6
	maxDisplayName    = 50
	maxBio            = 160
	maxLocation       = 100
)

// ValidateDisplayName checks if the display name is valid
func ValidateDisplayName(name string) error {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 2 || n > maxDisplayName {
		return apperrors.Invalid("displayName", "Display name must be between 2 and 50 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if !validator.IsValidEmail(strings.TrimSpace(email)) {
		return apperrors.Invalid("email", "Please enter a valid email address")
	}
	return nil
}

// ValidateSignUp checks the sign-up form in field order.
func ValidateSignUp(req *SignUpRequest) error {
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if len(req.Password) < minPasswordLength {
		return apperrors.Invalid("password", "Password should be at least 6 characters")
	}
	return ValidateDisplayName(req.DisplayName)
}

func ValidateLogin(req *LoginRequest) error {
	return validator.First(
		validateEmail(req.Email),
		validator.Required("password", "Password", req.Password),
	)
}

// ValidateProfileUpdate checks only the fields present in the update.
func ValidateProfileUpdate(u *ProfileUpdate) error {
	if u.DisplayName != nil {
		if err := ValidateDisplayName(*u.DisplayName); err != nil {
			return err
		}
		trimmed := strings.TrimSpace(*u.DisplayName)
		u.DisplayName = &trimmed
	}
	if u.PhotoURL != nil && *u.PhotoURL != "" && !validator.IsValidURL(*u.PhotoURL) {
		return apperrors.Invalid("photoUrl", "Photo must be a valid URL")
	}
	if u.Phone != nil && *u.Phone != "" && !validator.IsValidPhone(*u.Phone) {
		return apperrors.Invalid("phone", "Please enter a valid phone number")
	}
	if u.Bio != nil {
		if err := validator.MaxLength("bio", "Bio", *u.Bio, maxBio); err != nil {
			return err
		}
	}
	if u.Location != nil {
		if err := validator.MaxLength("location", "Location", *u.Location, maxLocation); err != nil {
			return err
		}
	}
	return nil
}
