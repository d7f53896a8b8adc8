package posts

import (
	"context"

	"github.com/xyz-asif/safetrip/internal/features/content"
	"github.com/xyz-asif/safetrip/internal/pkg/docstore"
	"github.com/xyz-asif/safetrip/internal/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository struct {
	posts docstore.Collection[Post]
}

func NewRepository(db *docstore.Database) *Repository {
	return &Repository{
		posts: docstore.Open[Post](db, "posts",
			content.CreatedIndex,
			docstore.Index{Keys: append([]docstore.SortKey{{Field: "category"}}, content.Newest...)},
		),
	}
}

func (r *Repository) Create(ctx context.Context, post *Post) error {
	return r.posts.Insert(ctx, post)
}

func (r *Repository) List(ctx context.Context, category Category, p pagination.Pagination) ([]Post, error) {
	var filter docstore.Filter
	if category != "" {
		filter = docstore.Filter{"category": string(category)}
	}
	return content.List(ctx, r.posts, filter, p)
}

func (r *Repository) Get(ctx context.Context, id primitive.ObjectID) (*Post, error) {
	return r.posts.Get(ctx, id)
}

func (r *Repository) IncrementViewCount(ctx context.Context, id primitive.ObjectID) {
	content.IncrementViews(ctx, r.posts, id)
}

func (r *Repository) Vote(ctx context.Context, id primitive.ObjectID, voter string, dir content.Direction) error {
	return content.CastVote(ctx, r.posts, id, voter, dir)
}

func (r *Repository) IncrementCommentCount(ctx context.Context, id primitive.ObjectID) error {
	return content.IncrementField(ctx, r.posts, id, "commentCount", 1)
}
