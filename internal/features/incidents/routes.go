package incidents

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the incident routes. Comment routes under /incidents/:id are
// registered by the comments feature.
func RegisterRoutes(router *gin.RouterGroup, svc *Service, requireAuth, optionalAuth, limit gin.HandlerFunc) {
	handler := NewHandler(svc)

	incidents := router.Group("/incidents")
	{
		incidents.GET("", optionalAuth, handler.ListIncidents)
		incidents.GET("/categories", handler.Categories)
		incidents.GET("/:id", handler.GetIncident)

		protected := incidents.Group("")
		protected.Use(requireAuth, limit)
		{
			protected.POST("", handler.CreateIncident)
			protected.POST("/:id/vote", handler.VoteIncident)
		}
	}
}
