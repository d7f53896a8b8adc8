package comments

import (
	"context"
	"time"

	"github.com/xyz-asif/safetrip/internal/features/content"
	"github.com/xyz-asif/safetrip/internal/pkg/docstore"
	"github.com/xyz-asif/safetrip/internal/pkg/pagination"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository struct {
	comments docstore.Collection[Comment]
}

func NewRepository(db *docstore.Database) *Repository {
	return &Repository{
		comments: docstore.Open[Comment](db, "comments",
			docstore.Index{Keys: append([]docstore.SortKey{{Field: "parentType"}, {Field: "parentId"}}, content.Newest...)},
			docstore.Index{Keys: []docstore.SortKey{{Field: "authorId"}, {Field: "createdAt", Desc: true}}},
		),
	}
}

// CreateComment inserts a new comment
func (r *Repository) CreateComment(ctx context.Context, comment *Comment) error {
	return r.comments.Insert(ctx, comment)
}

func (r *Repository) GetCommentByID(ctx context.Context, id primitive.ObjectID) (*Comment, error) {
	return r.comments.Get(ctx, id)
}

// ListByParent returns one page of a parent's comments, newest first.
func (r *Repository) ListByParent(ctx context.Context, parentType ParentType, parentID string, p pagination.Pagination) ([]Comment, error) {
	return content.List(ctx, r.comments, docstore.Filter{
		"parentType": string(parentType),
		"parentId":   parentID,
	}, p)
}

// UpdateBody replaces the body and marks the comment edited.
func (r *Repository) UpdateBody(ctx context.Context, id primitive.ObjectID, body string, at time.Time) error {
	ok, err := r.comments.Update(ctx, id, docstore.Update{
		Set: map[string]interface{}{"body": body, "edited": true, "updatedAt": at},
	})
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repository) Vote(ctx context.Context, id primitive.ObjectID, voter string, dir content.Direction) error {
	return content.CastVote(ctx, r.comments, id, voter, dir)
}

func (r *Repository) CountByParent(ctx context.Context, parentType ParentType, parentID string) (int64, error) {
	return r.comments.Count(ctx, docstore.Filter{"parentType": string(parentType), "parentId": parentID})
}
