package posts

import (
	"strings"

	"github.com/xyz-asif/safetrip/internal/pkg/validator"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
)

const (
	maxTitle  = 150
	maxBody   = 5000
	maxTags   = 10
	maxTagLen = 30
)

// ValidateCreate checks the post form and normalizes the title, body and tags.
func ValidateCreate(req *CreatePostRequest) (Category, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Body = strings.TrimSpace(req.Body)

	if err := validator.First(
		validator.Required("title", "Title", req.Title),
		validator.MaxLength("title", "Title", req.Title, maxTitle),
		validator.Required("body", "Content", req.Body),
		validator.MaxLength("body", "Content", req.Body, maxBody),
	); err != nil {
		return "", err
	}

	category, err := ParseCategory(req.Category)
	if err != nil {
		return "", err
	}

	tags, err := NormalizeTags(req.Tags)
	if err != nil {
		return "", err
	}
	req.Tags = tags
	return category, nil
}

// NormalizeTags trims tags, drops a leading '#' and empty entries, and removes case-insensitive
// duplicates keeping the first occurrence. Order is preserved.
func NormalizeTags(raw []string) ([]string, error) {
	tags := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, tag := range raw {
		tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		if err := validator.MaxLength("tags", "Each tag", tag, maxTagLen); err != nil {
			return nil, err
		}
		seen[key] = true
		tags = append(tags, tag)
	}
	if len(tags) > maxTags {
		return nil, apperrors.Invalid("tags", "Cannot have more than 10 tags")
	}
	return tags, nil
}
