package posts

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, svc *Service, requireAuth, optionalAuth, limit gin.HandlerFunc) {
	handler := NewHandler(svc)

	posts := router.Group("/community/posts")
	{
		posts.GET("", optionalAuth, handler.ListPosts)
		posts.GET("/:id", handler.GetPost)

		protected := posts.Group("")
		protected.Use(requireAuth, limit)
		{
			protected.POST("", handler.CreatePost)
			protected.POST("/:id/vote", handler.VotePost)
		}
	}
}
