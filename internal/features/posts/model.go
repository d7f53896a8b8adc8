package posts

import (
	"strings"
	"time"

	"github.com/xyz-asif/safetrip/internal/features/content"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category string

const (
	CategoryDiscussion   Category = "discussion"
	CategoryQuestion     Category = "question"
	CategoryTip          Category = "tip"
	CategoryWarning      Category = "warning"
	CategoryLocalInsight Category = "local-insights"
)

var Categories = []Category{
	CategoryDiscussion, CategoryQuestion, CategoryTip, CategoryWarning, CategoryLocalInsight,
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", apperrors.Invalid("category", "Please choose a valid post category")
}

// Post is a community board post. Author fields are a snapshot taken at creation.
type Post struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	AuthorID      string             `bson:"authorId" json:"authorId"`
	AuthorName    string             `bson:"authorName" json:"authorName"`
	AuthorAvatar  string             `bson:"authorAvatar" json:"authorAvatar"`
	Title         string             `bson:"title" json:"title"`
	Body          string             `bson:"body" json:"body"`
	Category      Category           `bson:"category" json:"category"`
	Tags          []string           `bson:"tags" json:"tags"`
	content.Votes `bson:",inline"`
	CommentCount  int       `bson:"commentCount" json:"commentCount"`
	ViewCount     int       `bson:"viewCount" json:"viewCount"`
	Pinned        bool      `bson:"pinned" json:"pinned"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

func (p Post) SearchFields() []string {
	return append([]string{p.Title, p.Body, p.AuthorName}, p.Tags...)
}

type CreatePostRequest struct {
	Title    string   `json:"title" example:"Is the night bus safe?"`
	Body     string   `json:"body" example:"Arriving at 2am, thinking of taking the N1"`
	Category string   `json:"category" example:"question"`
	Tags     []string `json:"tags" example:"lisbon,night"`
}
