package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/safetrip/internal/middleware"
	"github.com/xyz-asif/safetrip/internal/pkg/response"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
)

// NewAuthMiddleware rejects requests without a valid access token and attaches the session.
func NewAuthMiddleware(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := middleware.BearerToken(c)
		if !ok {
			response.Unauthorized(c, "Authorization header required", "AUTH_REQUIRED")
			c.Abort()
			return
		}

		session, err := svc.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthenticated) {
				response.Unauthorized(c, "Invalid or expired token", "INVALID_TOKEN")
			} else {
				response.FromError(c, err)
			}
			c.Abort()
			return
		}

		SetSession(c, session)
		c.Next()
	}
}

// OptionalAuth attaches a session when a valid token is present and lets anonymous requests through.
func OptionalAuth(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := middleware.BearerToken(c); ok {
			if session, err := svc.Authenticate(c.Request.Context(), token); err == nil {
				SetSession(c, session)
			}
		}
		c.Next()
	}
}

// SetSession attaches session to the request for SessionFrom.
func SetSession(c *gin.Context, session *Session) {
	c.Set(sessionKey, session)
	c.Set("userID", session.UID())
}
