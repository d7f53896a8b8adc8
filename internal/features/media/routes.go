package media

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the upload endpoint. requireAuth guards it.
func RegisterRoutes(router *gin.RouterGroup, store Store, requireAuth gin.HandlerFunc, limit gin.HandlerFunc) {
	handler := NewHandler(store)

	media := router.Group("/media")
	{
		media.POST("/upload", requireAuth, limit, handler.UploadMedia)
	}
}
