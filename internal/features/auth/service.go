package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/xyz-asif/safetrip/internal/features/content"
	"github.com/xyz-asif/safetrip/internal/features/media"
	"github.com/xyz-asif/safetrip/internal/pkg/cache"
	"github.com/xyz-asif/safetrip/internal/pkg/jwt"
	"github.com/xyz-asif/safetrip/internal/pkg/logger"
	"github.com/xyz-asif/safetrip/internal/pkg/metrics"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
	"go.uber.org/zap"
)

// Badges awarded by RecordActivity.
const (
	BadgeFirstReport  = "first-report"
	BadgeStoryteller  = "storyteller"
	BadgeHelpfulVoice = "helpful-voice"
)

type activityRule struct {
	points    int
	counter   string
	badge     string
	threshold int
}

var activityRules = map[content.Activity]activityRule{
	content.ActivityReport:  {points: 10, counter: "reportsCount", badge: BadgeFirstReport, threshold: 1},
	content.ActivityPost:    {points: 5, counter: "postsCount", badge: BadgeStoryteller, threshold: 5},
	content.ActivityComment: {points: 2, counter: "commentsCount", badge: BadgeHelpfulVoice, threshold: 10},
}

var errNoProvider = errors.New("identity provider not configured")

// Service coordinates the identity provider, the profile store and application tokens.
type Service struct {
	provider IdentityProvider
	repo     *Repository
	tokens   *jwt.Manager
	cache    cache.Cache
	cacheTTL time.Duration
	now      func() time.Time

	mu        sync.RWMutex
	nextID    int
	listeners map[int]func(*Identity)
}

type Option func(*Service)

// WithCache enables cache-aside profile reads.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the auth service. provider may be nil, in which case every
// provider-backed operation reports ErrUnavailable.
func NewService(provider IdentityProvider, repo *Repository, tokens *jwt.Manager, opts ...Option) *Service {
	s := &Service{
		provider:  provider,
		repo:      repo,
		tokens:    tokens,
		now:       time.Now,
		listeners: make(map[int]func(*Identity)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) identityProvider() (IdentityProvider, error) {
	if s.provider == nil {
		return nil, apperrors.Unavailable("identity provider", errNoProvider)
	}
	return s.provider, nil
}

// timestamp is truncated to the store's millisecond precision so returned
// profiles equal what a later read yields.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// EnsureProfile creates the profile on first sign-in and refreshes lastLoginAt afterwards.
// It is safe to call on every authentication event.
func (s *Service) EnsureProfile(ctx context.Context, identity *Identity) (*Profile, error) {
	if identity == nil || identity.UID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	now := s.timestamp()

	existing, err := s.repo.GetProfile(ctx, identity.UID)
	switch {
	case err == nil:
		return s.touch(ctx, existing, now)
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	profile := &Profile{
		ID:          identity.UID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		PhotoURL:    identity.PhotoURL,
		Phone:       identity.PhoneNumber,
		JoinedAt:    now,
		LastLoginAt: now,
		Badges:      []string{},
	}
	err = s.repo.CreateProfile(ctx, profile)
	if errors.Is(err, apperrors.ErrDuplicate) {
		// A concurrent first login won the insert.
		existing, err = s.repo.GetProfile(ctx, identity.UID)
		if err != nil {
			return nil, err
		}
		return s.touch(ctx, existing, now)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("profile created", zap.String("uid", identity.UID))
	return profile, nil
}

func (s *Service) touch(ctx context.Context, profile *Profile, now time.Time) (*Profile, error) {
	if err := s.repo.TouchLastLogin(ctx, profile.ID, now); err != nil {
		return nil, err
	}
	s.invalidate(ctx, profile.ID)
	profile.LastLoginAt = now
	return profile, nil
}

// GetProfile reads a profile, through the cache when one is configured.
func (s *Service) GetProfile(ctx context.Context, uid string) (*Profile, error) {
	if s.cache != nil {
		var cached Profile
		hit, err := s.cache.Get(ctx, cacheKey(uid), &cached)
		if err != nil {
			logger.Warn("profile cache read failed", zap.String("uid", uid), zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	profile, err := s.repo.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey(uid), profile, s.cacheTTL); err != nil {
			logger.Warn("profile cache write failed", zap.String("uid", uid), zap.Error(err))
		}
	}
	return profile, nil
}

// UpdateProfile merges the non-nil fields of upd into the caller's profile. Display name and
// photo changes are also pushed to the identity provider.
func (s *Service) UpdateProfile(ctx context.Context, session *Session, upd ProfileUpdate) (*Profile, error) {
	if !session.Authenticated() {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := ValidateProfileUpdate(&upd); err != nil {
		return nil, err
	}

	uid := session.UID()
	current, err := s.repo.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	var pushName, pushPhoto *string
	if upd.DisplayName != nil && *upd.DisplayName != current.DisplayName {
		fields["displayName"] = *upd.DisplayName
		current.DisplayName = *upd.DisplayName
		pushName = upd.DisplayName
	}
	if upd.PhotoURL != nil && *upd.PhotoURL != current.PhotoURL {
		fields["photoUrl"] = *upd.PhotoURL
		current.PhotoURL = *upd.PhotoURL
		pushPhoto = upd.PhotoURL
	}
	if upd.Phone != nil && *upd.Phone != current.Phone {
		fields["phone"] = *upd.Phone
		current.Phone = *upd.Phone
	}
	if upd.Bio != nil && *upd.Bio != current.Bio {
		fields["bio"] = *upd.Bio
		current.Bio = *upd.Bio
	}
	if upd.Location != nil && *upd.Location != current.Location {
		fields["location"] = *upd.Location
		current.Location = *upd.Location
	}

	if len(fields) == 0 {
		session.SetProfile(current)
		return current, nil
	}

	if err := s.repo.UpdateFields(ctx, uid, fields); err != nil {
		return nil, err
	}
	s.invalidate(ctx, uid)

	if pushName != nil || pushPhoto != nil {
		provider, err := s.identityProvider()
		if err == nil {
			err = provider.UpdateUser(ctx, uid, pushName, pushPhoto)
		}
		if err != nil {
			logger.Warn("identity profile sync failed", zap.String("uid", uid), zap.Error(err))
		}
	}

	session.SetProfile(current)
	return current, nil
}

// ReplaceProfilePhoto points the caller's profile at a freshly uploaded image and deletes the
// uploaded image it replaces. A failed delete leaves an orphaned object and is only logged.
func (s *Service) ReplaceProfilePhoto(ctx context.Context, session *Session, store media.Store, upload *media.Upload) (*Profile, error) {
	if !session.Authenticated() {
		return nil, apperrors.ErrUnauthenticated
	}
	uid := session.UID()
	current, err := s.repo.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	previous := current.PhotoHandle

	profile, err := s.UpdateProfile(ctx, session, ProfileUpdate{PhotoURL: &upload.URL})
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateFields(ctx, uid, map[string]interface{}{"photoHandle": upload.Handle}); err != nil {
		return nil, err
	}
	s.invalidate(ctx, uid)
	profile.PhotoHandle = upload.Handle
	session.SetProfile(profile)

	if previous != "" && previous != upload.Handle && store != nil {
		if err := store.Delete(ctx, previous); err != nil {
			logger.Warn("previous profile photo not deleted", zap.String("uid", uid), zap.String("handle", previous), zap.Error(err))
		}
	}
	return profile, nil
}

// RecordActivity credits reputation for a content action and awards any milestone badge.
// Failures are logged and never returned.
func (s *Service) RecordActivity(ctx context.Context, uid string, activity content.Activity) {
	rule, ok := activityRules[activity]
	if !ok || uid == "" {
		return
	}

	if err := s.repo.AddReputation(ctx, uid, rule.points, rule.counter); err != nil {
		logger.Warn("reputation update failed",
			zap.String("uid", uid), zap.String("activity", string(activity)), zap.Error(err))
		return
	}
	defer s.invalidate(ctx, uid)

	profile, err := s.repo.GetProfile(ctx, uid)
	if err != nil {
		logger.Warn("badge check failed", zap.String("uid", uid), zap.Error(err))
		return
	}

	var count int
	switch activity {
	case content.ActivityReport:
		count = profile.ReportsCount
	case content.ActivityPost:
		count = profile.PostsCount
	case content.ActivityComment:
		count = profile.CommentsCount
	}
	if count < rule.threshold {
		return
	}
	if err := s.repo.AwardBadge(ctx, uid, rule.badge); err != nil {
		logger.Warn("badge award failed", zap.String("uid", uid), zap.String("badge", rule.badge), zap.Error(err))
	}
}

func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error) {
	if err := ValidateSignUp(&req); err != nil {
		return nil, err
	}
	provider, err := s.identityProvider()
	if err != nil {
		return nil, err
	}
	identity, err := provider.SignUp(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, identity)
}

func (s *Service) SignIn(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := ValidateLogin(&req); err != nil {
		return nil, err
	}
	provider, err := s.identityProvider()
	if err != nil {
		return nil, err
	}
	identity, err := provider.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, identity)
}

func (s *Service) SignInWithGoogle(ctx context.Context, googleIDToken string) (*AuthResponse, error) {
	provider, err := s.identityProvider()
	if err != nil {
		return nil, err
	}
	identity, err := provider.SignInWithGoogle(ctx, googleIDToken)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, identity)
}

// ExchangeIDToken signs in with an ID token the client obtained from the provider directly.
func (s *Service) ExchangeIDToken(ctx context.Context, idToken string) (*AuthResponse, error) {
	provider, err := s.identityProvider()
	if err != nil {
		return nil, err
	}
	identity, err := provider.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, identity)
}

func (s *Service) establish(ctx context.Context, identity *Identity) (*AuthResponse, error) {
	profile, err := s.EnsureProfile(ctx, identity)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Generate(identity.UID, identity.Email)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	s.notify(identity)
	return &AuthResponse{Profile: profile, AccessToken: token, ExpiresAt: expiresAt}, nil
}

// SignOut revokes the provider sessions of the caller. Issued access tokens stay valid until they expire.
func (s *Service) SignOut(ctx context.Context, session *Session) error {
	if !session.Authenticated() {
		return apperrors.ErrUnauthenticated
	}
	provider, err := s.identityProvider()
	if err != nil {
		return err
	}
	if err := provider.SignOut(ctx, session.UID()); err != nil {
		return err
	}
	s.notify(nil)
	return nil
}

func (s *Service) SendPasswordReset(ctx context.Context, email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	provider, err := s.identityProvider()
	if err != nil {
		return err
	}
	return provider.SendPasswordReset(ctx, email)
}

// Authenticate turns an access token into a settled session.
func (s *Service) Authenticate(ctx context.Context, token string) (*Session, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthenticated, err)
	}

	session := NewSession(&Identity{UID: claims.UserID, Email: claims.Email})
	profile, err := s.GetProfile(ctx, claims.UserID)
	session.Settle(profile, err)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: profile missing", apperrors.ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// OnAuthStateChanged registers fn to be called with the identity after every sign-in and
// with nil after every sign-out. The returned func unsubscribes.
func (s *Service) OnAuthStateChanged(fn func(*Identity)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// RecordAuthState logs an auth state change and counts it. Registered with OnAuthStateChanged at startup.
func RecordAuthState(identity *Identity) {
	if identity == nil {
		metrics.AuthStateChanges.WithLabelValues("sign_out").Inc()
		logger.Info("signed out")
		return
	}
	metrics.AuthStateChanges.WithLabelValues("sign_in").Inc()
	logger.Info("signed in", zap.String("uid", identity.UID))
}

func (s *Service) notify(identity *Identity) {
	s.mu.RLock()
	fns := make([]func(*Identity), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(identity)
	}
}

func (s *Service) invalidate(ctx context.Context, uid string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey(uid)); err != nil {
		logger.Warn("profile cache invalidation failed", zap.String("uid", uid), zap.Error(err))
	}
}

func cacheKey(uid string) string {
	return "profile:" + uid
}
