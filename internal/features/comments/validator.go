package comments

import (
	"strings"

	"github.com/xyz-asif/safetrip/internal/pkg/validator"
)

const maxBody = 1000

// ValidateBody trims the comment text and checks its length
func ValidateBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if err := validator.First(
		validator.Required("body", "Comment", body),
		validator.MaxLength("body", "Comment", body, maxBody),
	); err != nil {
		return "", err
	}
	return body, nil
}
