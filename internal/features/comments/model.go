package comments

import (
	"context"
	"strings"
	"time"

	"github.com/xyz-asif/safetrip/internal/features/content"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParentType is the kind of entity a comment belongs to.
type ParentType string

const (
	ParentIncident ParentType = "incident"
	ParentPost     ParentType = "post"
)

func ParseParentType(s string) (ParentType, error) {
	switch p := ParentType(strings.ToLower(strings.TrimSpace(s))); p {
	case ParentIncident, ParentPost:
		return p, nil
	}
	return "", apperrors.Invalid("parentType", "Comments can only be added to incidents or posts")
}

// Parent is implemented by the services of every commentable entity.
type Parent interface {
	// Exists returns ErrNotFound when no entity has the id.
	Exists(ctx context.Context, id string) error
	IncrementCommentCount(ctx context.Context, id string) error
}

// Comment represents a comment on an incident or a community post
type Comment struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	ParentType    ParentType         `bson:"parentType" json:"parentType"`
	ParentID      string             `bson:"parentId" json:"parentId"`
	AuthorID      string             `bson:"authorId" json:"authorId"`
	AuthorName    string             `bson:"authorName" json:"authorName"`
	AuthorAvatar  string             `bson:"authorAvatar" json:"authorAvatar"`
	Body          string             `bson:"body" json:"body"`
	content.Votes `bson:",inline"`
	Edited        bool       `bson:"edited" json:"edited"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Request DTOs

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required" example:"Same thing happened to me last week"`
}

type UpdateCommentRequest struct {
	Body string `json:"body" binding:"required" example:"Same thing happened to me last month"`
}
