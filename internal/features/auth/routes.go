package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/safetrip/internal/features/media"
)

// RegisterRoutes mounts the auth and user routes. limit throttles the credential endpoints.
func RegisterRoutes(router *gin.RouterGroup, svc *Service, store media.Store, limit gin.HandlerFunc) {
	handler := NewHandler(svc, store)
	authMiddleware := NewAuthMiddleware(svc)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", limit, handler.SignUp)
		auth.POST("/login", limit, handler.Login)
		auth.POST("/google", limit, handler.GoogleLogin)
		auth.POST("/session", limit, handler.ExchangeSession)
		auth.POST("/password-reset", limit, handler.PasswordReset)
		auth.POST("/logout", authMiddleware, handler.Logout)
	}

	users := router.Group("/users")
	{
		// Own profile routes (must be first!)
		me := users.Group("/me")
		me.Use(authMiddleware)
		{
			me.GET("", handler.GetOwnProfile)
			me.PATCH("", handler.UpdateProfile)
			me.POST("/photo", limit, handler.UploadProfilePicture)
		}

		users.GET("/:id", handler.GetPublicProfile)
	}
}
