package comments

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/safetrip/internal/features/auth"
	"github.com/xyz-asif/safetrip/internal/features/content"
	"github.com/xyz-asif/safetrip/internal/features/incidents"
	"github.com/xyz-asif/safetrip/internal/pkg/docstore"
	"github.com/xyz-asif/safetrip/internal/pkg/pagination"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
)

type fakeParent struct {
	mu       sync.Mutex
	known    map[string]bool
	counts   map[string]int
	countErr error
}

func newParent(ids ...string) *fakeParent {
	p := &fakeParent{known: map[string]bool{}, counts: map[string]int{}}
	for _, id := range ids {
		p.known[id] = true
	}
	return p
}

func (p *fakeParent) Exists(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.known[id] {
		return apperrors.ErrNotFound
	}
	return nil
}

func (p *fakeParent) IncrementCommentCount(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.countErr != nil {
		return p.countErr
	}
	p.counts[id]++
	return nil
}

func (p *fakeParent) count(id string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[id]
}

type recorder struct {
	mu    sync.Mutex
	calls []content.Activity
}

func (r *recorder) RecordActivity(_ context.Context, _ string, a content.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, a)
}

func member(uid string) *auth.Session {
	s := auth.NewSession(&auth.Identity{UID: uid, DisplayName: "User " + uid})
	s.Settle(nil, nil)
	return s
}

func clock() content.Clock {
	var mu sync.Mutex
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Minute)
		return now
	}
}

type fixture struct {
	svc      *Service
	incident *fakeParent
	post     *fakeParent
	activity *recorder
}

func newFixture() fixture {
	f := fixture{incident: newParent("inc-1"), post: newParent("post-1"), activity: &recorder{}}
	f.svc = NewService(NewRepository(docstore.NewMemoryDatabase()), map[ParentType]Parent{
		ParentIncident: f.incident,
		ParentPost:     f.post,
	}, f.activity, clock())
	return f
}

func TestCreateIncrementsParentCount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, member("u1"), ParentIncident, "inc-1", CreateCommentRequest{Body: "Stay away from the square at night"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, member("u2"), ParentIncident, "inc-1", CreateCommentRequest{Body: "  Police were helpful  "})
	require.NoError(t, err)

	assert.Equal(t, 2, f.incident.count("inc-1"))
	assert.Equal(t, 0, f.post.count("inc-1"))
	assert.Equal(t, []content.Activity{content.ActivityComment, content.ActivityComment}, f.activity.calls)

	got, err := f.svc.List(ctx, ParentIncident, "inc-1", pagination.New(1, 20))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Police were helpful", got[0].Body)
	assert.Equal(t, "u2", got[0].AuthorID)
	assert.Equal(t, "User u2", got[0].AuthorName)
	assert.False(t, got[0].Edited)
	assert.Nil(t, got[0].UpdatedAt)

	other, err := f.svc.List(ctx, ParentPost, "inc-1", pagination.New(1, 20))
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCommentCountMatchesStoredComments(t *testing.T) {
	ctx := context.Background()
	db := docstore.NewMemoryDatabase()
	reports := incidents.NewService(incidents.NewRepository(db), nil, clock())
	repo := NewRepository(db)
	svc := NewService(repo, map[ParentType]Parent{ParentIncident: reports}, nil, clock())

	id, err := reports.Create(ctx, member("reporter"), incidents.CreateIncidentRequest{
		Title:       "Bag snatching",
		Description: "Near the ferry terminal",
		Category:    "theft",
		Severity:    "medium",
		Address:     "Cais do Sodré, Lisbon",
	})
	require.NoError(t, err)

	const n = 5
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Create(ctx, member(fmt.Sprintf("u%d", i)), ParentIncident, id, CreateCommentRequest{Body: "Same here"})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stored, err := repo.CountByParent(ctx, ParentIncident, id)
	require.NoError(t, err)
	require.EqualValues(t, n, stored)

	incident, err := reports.Get(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, stored, incident.CommentCount)

	other, err := repo.CountByParent(ctx, ParentPost, id)
	require.NoError(t, err)
	assert.Zero(t, other)
}

func TestCreateRejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, auth.Anonymous(), ParentPost, "post-1", CreateCommentRequest{Body: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = f.svc.Create(ctx, member("u1"), ParentPost, "missing", CreateCommentRequest{Body: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.svc.Create(ctx, member("u1"), ParentPost, "post-1", CreateCommentRequest{Body: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "body", apperrors.FieldOf(err))

	_, err = f.svc.Create(ctx, member("u1"), ParentType("anchor"), "post-1", CreateCommentRequest{Body: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	assert.Equal(t, 0, f.post.count("post-1"))
	assert.Empty(t, f.activity.calls)
}

func TestCreateKeepsCommentWhenCountFails(t *testing.T) {
	f := newFixture()
	f.post.countErr = errors.New("write conflict")
	ctx := context.Background()

	id, err := f.svc.Create(ctx, member("u1"), ParentPost, "post-1", CreateCommentRequest{Body: "Great tip"})
	require.NoError(t, err)

	stored, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Great tip", stored.Body)
	assert.Equal(t, 0, f.post.count("post-1"))
}

func TestEditByAuthorOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	id, err := f.svc.Create(ctx, member("u1"), ParentIncident, "inc-1", CreateCommentRequest{Body: "Original"})
	require.NoError(t, err)

	_, err = f.svc.Edit(ctx, member("u2"), id, UpdateCommentRequest{Body: "Hijacked"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.svc.Edit(ctx, auth.Anonymous(), id, UpdateCommentRequest{Body: "Hijacked"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	edited, err := f.svc.Edit(ctx, member("u1"), id, UpdateCommentRequest{Body: "Corrected"})
	require.NoError(t, err)
	assert.True(t, edited.Edited)
	require.NotNil(t, edited.UpdatedAt)

	stored, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Corrected", stored.Body)
	assert.True(t, stored.Edited)
	require.NotNil(t, stored.UpdatedAt)
	assert.True(t, stored.UpdatedAt.After(stored.CreatedAt))

	_, err = f.svc.Edit(ctx, member("u1"), "not-an-id", UpdateCommentRequest{Body: "x"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestVoteComment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	id, err := f.svc.Create(ctx, member("u1"), ParentIncident, "inc-1", CreateCommentRequest{Body: "Useful"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Vote(ctx, member("u2"), id, content.Up))
	require.NoError(t, f.svc.Vote(ctx, member("u3"), id, content.Down))
	require.NoError(t, f.svc.Vote(ctx, member("u3"), id, content.Up))

	got, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Upvotes)
	assert.Equal(t, 0, got.Downvotes)
	assert.Equal(t, content.Up, got.DirectionOf("u3"))

	assert.ErrorIs(t, f.svc.Vote(ctx, auth.Anonymous(), id, content.Up), apperrors.ErrUnauthenticated)
}
