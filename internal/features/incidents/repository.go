package incidents

import (
	"context"

	"github.com/xyz-asif/safetrip/internal/features/content"
	"github.com/xyz-asif/safetrip/internal/pkg/docstore"
	"github.com/xyz-asif/safetrip/internal/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository struct {
	incidents docstore.Collection[Incident]
}

func NewRepository(db *docstore.Database) *Repository {
	return &Repository{
		incidents: docstore.Open[Incident](db, "incidents",
			content.CreatedIndex,
			docstore.Index{Keys: append([]docstore.SortKey{{Field: "category"}}, content.Newest...)},
		),
	}
}

func (r *Repository) Create(ctx context.Context, incident *Incident) error {
	return r.incidents.Insert(ctx, incident)
}

// List returns one page, newest first. An empty category lists everything.
func (r *Repository) List(ctx context.Context, category Category, p pagination.Pagination) ([]Incident, error) {
	var filter docstore.Filter
	if category != "" {
		filter = docstore.Filter{"category": string(category)}
	}
	return content.List(ctx, r.incidents, filter, p)
}

func (r *Repository) Get(ctx context.Context, id primitive.ObjectID) (*Incident, error) {
	return r.incidents.Get(ctx, id)
}

func (r *Repository) IncrementViewCount(ctx context.Context, id primitive.ObjectID) {
	content.IncrementViews(ctx, r.incidents, id)
}

func (r *Repository) Vote(ctx context.Context, id primitive.ObjectID, voter string, dir content.Direction) error {
	return content.CastVote(ctx, r.incidents, id, voter, dir)
}

func (r *Repository) IncrementCommentCount(ctx context.Context, id primitive.ObjectID) error {
	return content.IncrementField(ctx, r.incidents, id, "commentCount", 1)
}
