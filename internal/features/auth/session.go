package auth

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/safetrip/internal/features/content"
)

const sessionKey = "session"

// SessionState is a point-in-time copy of a Session.
type SessionState struct {
	Identity *Identity
	Profile  *Profile
	Loading  bool
	Err      error
}

// Session is the current user as seen by one caller: the provider identity, the stored profile
// and whether the profile load has settled. It leaves the loading state exactly once.
type Session struct {
	mu       sync.RWMutex
	identity *Identity
	profile  *Profile
	err      error
	loading  bool
	done     chan struct{}
}

// NewSession starts a loading session for identity.
func NewSession(identity *Identity) *Session {
	return &Session{identity: identity, loading: true, done: make(chan struct{})}
}

// Anonymous returns a settled session with no identity.
func Anonymous() *Session {
	s := &Session{done: make(chan struct{})}
	close(s.done)
	return s
}

// Settle ends the loading state with the profile load result. Only the first call has any effect.
func (s *Session) Settle(profile *Profile, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loading {
		return false
	}
	s.profile, s.err, s.loading = profile, err, false
	close(s.done)
	return true
}

// SetProfile replaces the profile after a successful edit.
func (s *Session) SetProfile(profile *Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
}

func (s *Session) Snapshot() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionState{Identity: s.identity, Profile: s.profile, Loading: s.loading, Err: s.err}
}

// Wait blocks until the session settles or ctx is done.
func (s *Session) Wait(ctx context.Context) (SessionState, error) {
	select {
	case <-s.done:
		return s.Snapshot(), nil
	case <-ctx.Done():
		return s.Snapshot(), ctx.Err()
	}
}

func (s *Session) Authenticated() bool {
	return s != nil && s.identity != nil
}

// UID returns the identity key, or "" for an anonymous session.
func (s *Session) UID() string {
	if !s.Authenticated() {
		return ""
	}
	return s.identity.UID
}

// Author snapshots the display fields copied onto new content, preferring the stored profile.
func (s *Session) Author() content.Author {
	if !s.Authenticated() {
		return content.Author{}
	}
	state := s.Snapshot()
	author := content.Author{ID: state.Identity.UID, Name: state.Identity.DisplayName, Avatar: state.Identity.PhotoURL}
	if p := state.Profile; p != nil {
		if p.DisplayName != "" {
			author.Name = p.DisplayName
		}
		if p.PhotoURL != "" {
			author.Avatar = p.PhotoURL
		}
	}
	if author.Name == "" {
		author.Name = "Anonymous traveller"
	}
	return author
}

// SessionFrom returns the session attached by the auth middleware, or an anonymous one.
func SessionFrom(c *gin.Context) *Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return Anonymous()
}
