package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSettlesOnce(t *testing.T) {
	s := NewSession(traveller())
	assert.True(t, s.Snapshot().Loading)

	first := &Profile{ID: "uid-1", DisplayName: "Ana"}
	assert.True(t, s.Settle(first, nil))
	assert.False(t, s.Settle(nil, errors.New("late failure")))

	state := s.Snapshot()
	assert.False(t, state.Loading)
	assert.NoError(t, state.Err)
	assert.Same(t, first, state.Profile)
}

func TestSessionWait(t *testing.T) {
	s := NewSession(traveller())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	state, err := s.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, state.Loading)

	go s.Settle(&Profile{ID: "uid-1"}, nil)
	state, err = s.Wait(context.Background())
	require.NoError(t, err)
	assert.False(t, state.Loading)
	assert.Equal(t, "uid-1", state.Profile.ID)
}

func TestSessionAuthor(t *testing.T) {
	assert.Equal(t, "", Anonymous().Author().ID)
	assert.False(t, Anonymous().Authenticated())

	s := NewSession(&Identity{UID: "uid-2"})
	assert.Equal(t, "Anonymous traveller", s.Author().Name)

	s.Settle(&Profile{ID: "uid-2", DisplayName: "Bea", PhotoURL: "https://img.test/bea.png"}, nil)
	author := s.Author()
	assert.Equal(t, "uid-2", author.ID)
	assert.Equal(t, "Bea", author.Name)
	assert.Equal(t, "https://img.test/bea.png", author.Avatar)
}
