package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, expires, err := m.Generate("uid-1", "a@example.com")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "uid-1", claims.UserID)
	require.Equal(t, "uid-1", claims.Subject)
	require.Equal(t, "a@example.com", claims.Email)
}

func TestValidateRejectsForeignAndExpiredTokens(t *testing.T) {
	m := NewManager("secret", time.Hour)
	token, _, err := m.Generate("uid-1", "")
	require.NoError(t, err)

	_, err = NewManager("other", time.Hour).Validate(token)
	require.Error(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = m.Validate(token)
	require.Error(t, err)
}

func TestGenerateRequiresSecret(t *testing.T) {
	_, _, err := NewManager("", time.Hour).Generate("uid", "")
	require.Error(t, err)
}
