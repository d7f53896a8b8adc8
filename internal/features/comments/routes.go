package comments

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers comment routes under their parents and the standalone comment routes.
func RegisterRoutes(router *gin.RouterGroup, svc *Service, requireAuth, limit gin.HandlerFunc) {
	handler := NewHandler(svc)

	router.GET("/incidents/:id/comments", handler.ListIncidentComments)
	router.POST("/incidents/:id/comments", requireAuth, limit, handler.CreateIncidentComment)

	router.GET("/community/posts/:id/comments", handler.ListPostComments)
	router.POST("/community/posts/:id/comments", requireAuth, limit, handler.CreatePostComment)

	comments := router.Group("/comments")
	comments.Use(requireAuth)
	{
		comments.PATCH("/:id", handler.UpdateComment)
		comments.POST("/:id/vote", limit, handler.VoteComment)
	}
}
