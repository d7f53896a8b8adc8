package auth

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/xyz-asif/safetrip/internal/pkg/docstore"
	"github.com/xyz-asif/safetrip/internal/pkg/jwt"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) SignUp(ctx context.Context, email, password, displayName string) (*Identity, error) {
	args := m.Called(ctx, email, password, displayName)
	return identityArg(args, 0), args.Error(1)
}

func (m *mockProvider) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	args := m.Called(ctx, email, password)
	return identityArg(args, 0), args.Error(1)
}

func (m *mockProvider) SignInWithGoogle(ctx context.Context, googleIDToken string) (*Identity, error) {
	args := m.Called(ctx, googleIDToken)
	return identityArg(args, 0), args.Error(1)
}

func (m *mockProvider) SignOut(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *mockProvider) SendPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockProvider) UpdateUser(ctx context.Context, uid string, displayName, photoURL *string) error {
	return m.Called(ctx, uid, displayName, photoURL).Error(0)
}

func (m *mockProvider) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	args := m.Called(ctx, idToken)
	return identityArg(args, 0), args.Error(1)
}

func identityArg(args mock.Arguments, i int) *Identity {
	if v := args.Get(i); v != nil {
		return v.(*Identity)
	}
	return nil
}

// memCache is an in-process cache.Cache used to observe cache-aside behavior.
type memCache struct {
	mu      sync.Mutex
	entries map[string]Profile
	gets    int
	hits    int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]Profile{}}
}

func (c *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	p, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	c.hits++
	*dest.(*Profile) = p
	return true, nil
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = *value.(*Profile)
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

type fixture struct {
	svc      *Service
	repo     *Repository
	provider *mockProvider
	tokens   *jwt.Manager
	clock    *testClock
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newFixture(opts ...Option) *fixture {
	clock := &testClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	repo := NewRepository(docstore.NewMemoryDatabase())
	provider := &mockProvider{}
	tokens := jwt.NewManager("test-secret", time.Hour)
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return &fixture{
		svc:      NewService(provider, repo, tokens, opts...),
		repo:     repo,
		provider: provider,
		tokens:   tokens,
		clock:    clock,
	}
}

func traveller() *Identity {
	return &Identity{
		UID:         "uid-1",
		Email:       "ana@example.com",
		DisplayName: "Ana",
		PhotoURL:    "https://img.test/ana.png",
		PhoneNumber: "+15551234567",
	}
}
