package incidents

import (
	"strings"
	"time"

	"github.com/xyz-asif/safetrip/internal/features/content"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category string

const (
	CategoryTheft      Category = "theft"
	CategoryHarassment Category = "harassment"
	CategoryAccident   Category = "accident"
	CategoryWeather    Category = "weather"
	CategoryMedical    Category = "medical"
	CategoryOther      Category = "other"
)

var Categories = []Category{
	CategoryTheft, CategoryHarassment, CategoryAccident,
	CategoryWeather, CategoryMedical, CategoryOther,
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", apperrors.Invalid("category", "Please choose a valid incident category")
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

func ParseSeverity(s string) (Severity, error) {
	v := Severity(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Severities {
		if v == known {
			return v, nil
		}
	}
	return "", apperrors.Invalid("severity", "Please choose a valid severity level")
}

type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat" example:"38.7223"`
	Lng float64 `bson:"lng" json:"lng" example:"-9.1393"`
}

type Location struct {
	Address     string       `bson:"address" json:"address" example:"Rossio Station, Lisbon"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// Incident is a user-submitted safety report. It is immutable after creation apart from its
// counters. Reporter name and avatar are a snapshot taken at creation.
type Incident struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	ReporterID     string             `bson:"reporterId" json:"reporterId"`
	ReporterName   string             `bson:"reporterName" json:"reporterName"`
	ReporterAvatar string             `bson:"reporterAvatar" json:"reporterAvatar"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description" json:"description"`
	Category       Category           `bson:"category" json:"category"`
	Severity       Severity           `bson:"severity" json:"severity"`
	Location       Location           `bson:"location" json:"location"`
	PhotoURL       string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	content.Votes  `bson:",inline"`
	ViewCount      int       `bson:"viewCount" json:"viewCount"`
	CommentCount   int       `bson:"commentCount" json:"commentCount"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// SearchFields is what list search matches against.
func (i Incident) SearchFields() []string {
	return []string{i.Title, i.Description, i.ReporterName, i.Location.Address, string(i.Category)}
}

// CreateIncidentRequest is the report form. Counters are never taken from the client.
type CreateIncidentRequest struct {
	Title       string       `json:"title" example:"Pickpockets on tram 28"`
	Description string       `json:"description" example:"Two people working together near the doors"`
	Category    string       `json:"category" example:"theft"`
	Severity    string       `json:"severity" example:"medium"`
	Address     string       `json:"address" example:"Tram 28, Lisbon"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	PhotoURL    string       `json:"photoUrl,omitempty"`
}
