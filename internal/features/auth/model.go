package auth

import (
	"time"
)

// Identity is what the identity provider knows about a signed-in user.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl"`
	PhoneNumber string `json:"phoneNumber"`
}

// Profile is the application's record of a user, keyed by the provider UID.
// Reputation, badges and counts are maintained by RecordActivity.
type Profile struct {
	ID            string    `bson:"_id" json:"id"`
	Email         string    `bson:"email" json:"email"`
	DisplayName   string    `bson:"displayName" json:"displayName"`
	PhotoURL      string    `bson:"photoUrl" json:"photoUrl"`
	PhotoHandle   string    `bson:"photoHandle,omitempty" json:"-"`
	Phone         string    `bson:"phone" json:"phone"`
	Bio           string    `bson:"bio" json:"bio"`
	Location      string    `bson:"location" json:"location"`
	JoinedAt      time.Time `bson:"joinedAt" json:"joinedAt"`
	LastLoginAt   time.Time `bson:"lastLoginAt" json:"lastLoginAt"`
	Reputation    int       `bson:"reputation" json:"reputation"`
	Badges        []string  `bson:"badges" json:"badges"`
	ReportsCount  int       `bson:"reportsCount" json:"reportsCount"`
	PostsCount    int       `bson:"postsCount" json:"postsCount"`
	CommentsCount int       `bson:"commentsCount" json:"commentsCount"`
}

// ToPublicProfile returns the fields safe for public display
func (p *Profile) ToPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":            p.ID,
		"displayName":   p.DisplayName,
		"photoUrl":      p.PhotoURL,
		"bio":           p.Bio,
		"location":      p.Location,
		"joinedAt":      p.JoinedAt,
		"reputation":    p.Reputation,
		"badges":        p.Badges,
		"reportsCount":  p.ReportsCount,
		"postsCount":    p.PostsCount,
		"commentsCount": p.CommentsCount,
	}
}

// ProfileUpdate carries the fields a user may edit. Nil fields are left untouched.
type ProfileUpdate struct {
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoUrl"`
	Phone       *string `json:"phone"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
}

// SignUpRequest represents the payload for email sign-up
type SignUpRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName" binding:"required"`
}

// LoginRequest represents the payload for email sign-in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GoogleAuthRequest represents the payload for Google sign-in
type GoogleAuthRequest struct {
	GoogleIDToken string `json:"googleIdToken" binding:"required"`
}

// SessionRequest exchanges a provider ID token obtained client-side
type SessionRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// PasswordResetRequest represents the payload for a password reset email
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Profile     *Profile  `json:"profile"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
