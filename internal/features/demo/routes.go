package demo

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the demo endpoints on the /api group.
func RegisterRoutes(router *gin.RouterGroup, gen *Generator) {
	handler := NewHandler(gen)

	router.GET("/ping", handler.Ping)
	router.GET("/demo", handler.Demo)
	router.POST("/analyze-location", handler.AnalyzeLocation)
	router.POST("/report-incident", handler.ReportIncident)
}
