package incidents

import (
	"strings"

	"github.com/xyz-asif/safetrip/internal/pkg/validator"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
)

const (
	maxTitle       = 120
	maxDescription = 2000
	maxAddress     = 200
)

// ValidateCreate checks the report form in display order and normalizes its text fields.
func ValidateCreate(req *CreateIncidentRequest) (Category, Severity, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Address = strings.TrimSpace(req.Address)

	if err := validator.First(
		validator.Required("title", "Title", req.Title),
		validator.MaxLength("title", "Title", req.Title, maxTitle),
		validator.Required("description", "Description", req.Description),
		validator.MaxLength("description", "Description", req.Description, maxDescription),
	); err != nil {
		return "", "", err
	}

	category, err := ParseCategory(req.Category)
	if err != nil {
		return "", "", err
	}
	severity, err := ParseSeverity(req.Severity)
	if err != nil {
		return "", "", err
	}

	if err := validator.First(
		validator.Required("address", "Location", req.Address),
		validator.MaxLength("address", "Location", req.Address, maxAddress),
	); err != nil {
		return "", "", err
	}
	if c := req.Coordinates; c != nil && (c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180) {
		return "", "", apperrors.Invalid("coordinates", "Coordinates are out of range")
	}
	if req.PhotoURL != "" && !validator.IsValidURL(req.PhotoURL) {
		return "", "", apperrors.Invalid("photoUrl", "Photo must be a valid URL")
	}

	return category, severity, nil
}
