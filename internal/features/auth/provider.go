package auth

import (
	"context"
)

// IdentityProvider is the contract consumed from the external identity service.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password, displayName string) (*Identity, error)
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	SignInWithGoogle(ctx context.Context, googleIDToken string) (*Identity, error)
	// SignOut revokes the user's provider sessions.
	SignOut(ctx context.Context, uid string) error
	SendPasswordReset(ctx context.Context, email string) error
	// UpdateUser pushes the non-nil fields to the provider's own profile.
	UpdateUser(ctx context.Context, uid string, displayName, photoURL *string) error
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
}
