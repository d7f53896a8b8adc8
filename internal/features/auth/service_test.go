package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/safetrip/internal/features/content"
	"github.com/xyz-asif/safetrip/internal/pkg/metrics"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
)

func TestEnsureProfileCreatesOnceThenTouches(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.svc.EnsureProfile(ctx, traveller())
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", first.Email)
	assert.Equal(t, "+15551234567", first.Phone)
	assert.Empty(t, first.Bio)
	assert.Equal(t, first.JoinedAt, first.LastLoginAt)
	joined := first.JoinedAt

	f.clock.Advance(time.Hour)
	second, err := f.svc.EnsureProfile(ctx, &Identity{UID: "uid-1", DisplayName: "Changed upstream"})
	require.NoError(t, err)

	count, err := f.repo.CountProfiles(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	assert.Equal(t, joined, second.JoinedAt)
	assert.Equal(t, joined.Add(time.Hour), second.LastLoginAt)
	assert.Equal(t, "Ana", second.DisplayName)

	stored, err := f.repo.GetProfile(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, second.LastLoginAt, stored.LastLoginAt)
	assert.Equal(t, "Ana", stored.DisplayName)
}

func TestEnsureProfileConcurrentFirstLogins(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.EnsureProfile(ctx, traveller())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := f.repo.CountProfiles(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestEnsureProfileRequiresIdentity(t *testing.T) {
	f := newFixture()
	_, err := f.svc.EnsureProfile(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous session", func(t *testing.T) {
		f := newFixture()
		name := "Bea"
		_, err := f.svc.UpdateProfile(ctx, Anonymous(), ProfileUpdate{DisplayName: &name})
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("invalid field", func(t *testing.T) {
		f := newFixture()
		session := signedIn(t, f)
		phone := "call me"
		_, err := f.svc.UpdateProfile(ctx, session, ProfileUpdate{Phone: &phone})
		require.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, "phone", apperrors.FieldOf(err))
	})

	t.Run("name change syncs to provider", func(t *testing.T) {
		f := newFixture()
		session := signedIn(t, f)
		name := "  Ana Lima "
		bio := "Backpacker"
		f.provider.On("UpdateUser", mock.Anything, "uid-1",
			mock.MatchedBy(func(n *string) bool { return n != nil && *n == "Ana Lima" }),
			(*string)(nil)).Return(nil).Once()

		profile, err := f.svc.UpdateProfile(ctx, session, ProfileUpdate{DisplayName: &name, Bio: &bio})
		require.NoError(t, err)
		assert.Equal(t, "Ana Lima", profile.DisplayName)
		assert.Equal(t, "Backpacker", profile.Bio)
		assert.Equal(t, "Ana Lima", session.Author().Name)
		f.provider.AssertExpectations(t)
	})

	t.Run("other fields stay local", func(t *testing.T) {
		f := newFixture()
		session := signedIn(t, f)
		location := "Lisbon"
		sameName := "Ana"

		profile, err := f.svc.UpdateProfile(ctx, session, ProfileUpdate{Location: &location, DisplayName: &sameName})
		require.NoError(t, err)
		assert.Equal(t, "Lisbon", profile.Location)
		f.provider.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("provider sync failure keeps stored change", func(t *testing.T) {
		f := newFixture()
		session := signedIn(t, f)
		photo := "https://img.test/new.png"
		f.provider.On("UpdateUser", mock.Anything, "uid-1", (*string)(nil), mock.Anything).
			Return(apperrors.Unavailable("identity provider", errors.New("down"))).Once()

		profile, err := f.svc.UpdateProfile(ctx, session, ProfileUpdate{PhotoURL: &photo})
		require.NoError(t, err)
		assert.Equal(t, photo, profile.PhotoURL)

		stored, err := f.repo.GetProfile(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, photo, stored.PhotoURL)
	})
}

func TestRecordActivityAwardsReputationAndBadges(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.EnsureProfile(ctx, traveller())
	require.NoError(t, err)

	f.svc.RecordActivity(ctx, "uid-1", content.ActivityReport)
	for i := 0; i < 4; i++ {
		f.svc.RecordActivity(ctx, "uid-1", content.ActivityPost)
	}

	p, err := f.repo.GetProfile(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, 30, p.Reputation)
	assert.Equal(t, 1, p.ReportsCount)
	assert.Equal(t, 4, p.PostsCount)
	assert.Equal(t, []string{BadgeFirstReport}, p.Badges)

	f.svc.RecordActivity(ctx, "uid-1", content.ActivityPost)
	f.svc.RecordActivity(ctx, "uid-1", content.ActivityReport)
	f.svc.RecordActivity(ctx, "uid-1", content.ActivityComment)

	p, err = f.repo.GetProfile(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, 47, p.Reputation)
	assert.Equal(t, 1, p.CommentsCount)
	assert.ElementsMatch(t, []string{BadgeFirstReport, BadgeStoryteller}, p.Badges)

	// Unknown users are ignored rather than surfaced.
	f.svc.RecordActivity(ctx, "ghost", content.ActivityPost)
	_, err = f.repo.GetProfile(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSignInIssuesTokenAndNotifies(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.provider.On("SignIn", mock.Anything, "ana@example.com", "hunter22").Return(traveller(), nil)
	f.provider.On("SignOut", mock.Anything, "uid-1").Return(nil)

	var seen []*Identity
	unsubscribe := f.svc.OnAuthStateChanged(func(id *Identity) { seen = append(seen, id) })

	resp, err := f.svc.SignIn(ctx, LoginRequest{Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "uid-1", resp.Profile.ID)
	require.NotEmpty(t, resp.AccessToken)

	session, err := f.svc.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)
	state := session.Snapshot()
	assert.False(t, state.Loading)
	assert.Equal(t, "Ana", state.Profile.DisplayName)

	require.NoError(t, f.svc.SignOut(ctx, session))
	require.Len(t, seen, 2)
	assert.Equal(t, "uid-1", seen[0].UID)
	assert.Nil(t, seen[1])

	unsubscribe()
	_, err = f.svc.SignIn(ctx, LoginRequest{Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Len(t, seen, 2)
}

func TestRecordAuthStateCountsEvents(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.provider.On("SignIn", mock.Anything, "ana@example.com", "hunter22").Return(traveller(), nil)
	f.provider.On("SignOut", mock.Anything, "uid-1").Return(nil)
	defer f.svc.OnAuthStateChanged(RecordAuthState)()

	signIns := testutil.ToFloat64(metrics.AuthStateChanges.WithLabelValues("sign_in"))
	signOuts := testutil.ToFloat64(metrics.AuthStateChanges.WithLabelValues("sign_out"))

	resp, err := f.svc.SignIn(ctx, LoginRequest{Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)
	session, err := f.svc.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)
	require.NoError(t, f.svc.SignOut(ctx, session))

	assert.Equal(t, signIns+1, testutil.ToFloat64(metrics.AuthStateChanges.WithLabelValues("sign_in")))
	assert.Equal(t, signOuts+1, testutil.ToFloat64(metrics.AuthStateChanges.WithLabelValues("sign_out")))
}

func TestSignInFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("bad credentials", func(t *testing.T) {
		f := newFixture()
		f.provider.On("SignIn", mock.Anything, "ana@example.com", "wrong!").Return(nil, apperrors.ErrUnauthenticated)
		_, err := f.svc.SignIn(ctx, LoginRequest{Email: "ana@example.com", Password: "wrong!"})
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("invalid email never reaches provider", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.SignUp(ctx, SignUpRequest{Email: "nope", Password: "secret1", DisplayName: "Ana"})
		require.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, "email", apperrors.FieldOf(err))
		f.provider.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no provider configured", func(t *testing.T) {
		svc := NewService(nil, newFixture().repo, newFixture().tokens)
		_, err := svc.SignInWithGoogle(ctx, "tok")
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	token, _, err := f.tokens.Generate("deleted-user", "x@example.com")
	require.NoError(t, err)
	_, err = f.svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestGetProfileUsesCache(t *testing.T) {
	c := newMemCache()
	f := newFixture(WithCache(c, time.Minute))
	ctx := context.Background()
	_, err := f.svc.EnsureProfile(ctx, traveller())
	require.NoError(t, err)

	_, err = f.svc.GetProfile(ctx, "uid-1")
	require.NoError(t, err)
	p, err := f.svc.GetProfile(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.DisplayName)
	assert.Equal(t, 1, c.hits)

	f.svc.RecordActivity(ctx, "uid-1", content.ActivityComment)
	p, err = f.svc.GetProfile(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Reputation)
}

func signedIn(t *testing.T, f *fixture) *Session {
	t.Helper()
	session := NewSession(traveller())
	profile, err := f.svc.EnsureProfile(context.Background(), traveller())
	require.NoError(t, err)
	session.Settle(profile, nil)
	return session
}
