package demo

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/safetrip/internal/pkg/response"
)

type Handler struct {
	gen *Generator
}

func NewHandler(gen *Generator) *Handler {
	return &Handler{gen: gen}
}

// Ping godoc
// @Summary Demo liveness
// @Tags demo
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Router /api/ping [get]
func (h *Handler) Ping(c *gin.Context) {
	response.Success(c, gin.H{"message": "pong"})
}

// Demo godoc
// @Summary Demo API index
// @Tags demo
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Router /api/demo [get]
func (h *Handler) Demo(c *gin.Context) {
	response.Success(c, gin.H{
		"message": "SafeTrip demo API",
		"endpoints": []string{
			"GET /api/ping",
			"POST /api/analyze-location",
			"POST /api/report-incident",
		},
	})
}

// AnalyzeLocation godoc
// @Summary Mock location risk analysis
// @Description Returns a random risk score and sample incidents. Not a real assessment.
// @Tags demo
// @Accept json
// @Produce json
// @Param request body AnalyzeLocationRequest true "Location"
// @Success 200 {object} response.SuccessResponse{data=LocationAnalysis}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/analyze-location [post]
func (h *Handler) AnalyzeLocation(c *gin.Context) {
	var req AnalyzeLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Location) == "" {
		response.BadRequest(c, "location is required", "MISSING_FIELDS")
		return
	}
	response.Success(c, h.gen.Analyze(strings.TrimSpace(req.Location)))
}

// ReportIncident godoc
// @Summary Mock incident intake
// @Description Acknowledges the report with a generated id. Nothing is stored.
// @Tags demo
// @Accept json
// @Produce json
// @Param request body ReportIncidentRequest true "Incident"
// @Success 201 {object} response.SuccessResponse{data=ReportReceipt}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/report-incident [post]
func (h *Handler) ReportIncident(c *gin.Context) {
	var req ReportIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "type, description and location are required", "MISSING_FIELDS")
		return
	}
	req.Type = strings.TrimSpace(req.Type)
	req.Description = strings.TrimSpace(req.Description)
	req.Location = strings.TrimSpace(req.Location)
	if req.Type == "" || req.Description == "" || req.Location == "" {
		response.BadRequest(c, "type, description and location are required", "MISSING_FIELDS")
		return
	}
	response.Created(c, h.gen.Receive(req))
}
