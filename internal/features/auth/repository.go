package auth

import (
	"context"
	"time"

	"github.com/xyz-asif/safetrip/internal/pkg/docstore"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
)

// Repository handles profile persistence. Profiles are keyed by the provider UID.
type Repository struct {
	profiles docstore.Collection[Profile]
}

// NewRepository opens the profiles collection
func NewRepository(db *docstore.Database) *Repository {
	return &Repository{
		profiles: docstore.Open[Profile](db, "profiles",
			docstore.Index{Keys: []docstore.SortKey{{Field: "email"}}},
		),
	}
}

// GetProfile returns ErrNotFound when the user has never signed in.
func (r *Repository) GetProfile(ctx context.Context, uid string) (*Profile, error) {
	return r.profiles.Get(ctx, uid)
}

// CreateProfile returns ErrDuplicate if a profile with the same UID exists.
func (r *Repository) CreateProfile(ctx context.Context, p *Profile) error {
	if p.Badges == nil {
		p.Badges = []string{}
	}
	return r.profiles.Insert(ctx, p)
}

func (r *Repository) TouchLastLogin(ctx context.Context, uid string, at time.Time) error {
	return r.UpdateFields(ctx, uid, map[string]interface{}{"lastLoginAt": at})
}

// UpdateFields sets the given fields on the profile.
func (r *Repository) UpdateFields(ctx context.Context, uid string, fields map[string]interface{}) error {
	ok, err := r.profiles.Update(ctx, uid, docstore.Update{Set: fields})
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrNotFound
	}
	return nil
}

// AddReputation bumps reputation and one aggregate counter in a single update.
func (r *Repository) AddReputation(ctx context.Context, uid string, points int, counter string) error {
	ok, err := r.profiles.Update(ctx, uid, docstore.Update{
		Inc: map[string]int{"reputation": points, counter: 1},
	})
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrNotFound
	}
	return nil
}

// AwardBadge adds badge to the profile's badge set.
func (r *Repository) AwardBadge(ctx context.Context, uid, badge string) error {
	_, err := r.profiles.Update(ctx, uid, docstore.Update{
		AddToSet: map[string]string{"badges": badge},
	})
	return err
}

// CountProfiles returns the number of stored profiles.
func (r *Repository) CountProfiles(ctx context.Context) (int64, error) {
	return r.profiles.Count(ctx, nil)
}
