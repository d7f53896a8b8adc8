package safetymap

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, data Dataset) {
	handler := NewHandler(data)
	router.GET("/map/overlays", handler.GetOverlays)
}
