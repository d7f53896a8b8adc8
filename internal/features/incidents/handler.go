package incidents

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/safetrip/internal/features/auth"
	"github.com/xyz-asif/safetrip/internal/features/content"
	"github.com/xyz-asif/safetrip/internal/features/pages"
	"github.com/xyz-asif/safetrip/internal/pkg/pagination"
	"github.com/xyz-asif/safetrip/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListIncidents godoc
// @Summary List incident reports
// @Description Newest first. q filters the returned page by title, description, reporter or address.
// @Tags incidents
// @Produce json
// @Param category query string false "theft, harassment, accident, weather, medical or other"
// @Param q query string false "Search text"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} response.PaginatedResponse{data=[]Incident}
// @Failure 422 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /incidents [get]
func (h *Handler) ListIncidents(c *gin.Context) {
	p := pagination.FromRequest(c.Query("page"), c.Query("limit"))
	view := pages.New[Incident, CreateIncidentRequest](h.service, auth.SessionFrom(c), p)
	defer view.Close()

	view.SetSearch(c.Query("q"))
	if err := view.Show(c.Request.Context(), c.Query("category"), p.Page); err != nil {
		response.FromError(c, err)
		return
	}

	response.Paginated(c, view.State().Items, p.Page, p.Limit)
}

// CreateIncident godoc
// @Summary Report an incident
// @Tags incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateIncidentRequest true "Incident report"
// @Success 201 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /incidents [post]
func (h *Handler) CreateIncident(c *gin.Context) {
	var req CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	id, err := h.service.Create(c.Request.Context(), auth.SessionFrom(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, gin.H{"id": id})
}

// GetIncident godoc
// @Summary Get an incident
// @Description Counts a view
// @Tags incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} response.SuccessResponse{data=Incident}
// @Failure 404 {object} response.ErrorResponse
// @Router /incidents/{id} [get]
func (h *Handler) GetIncident(c *gin.Context) {
	incident, err := h.service.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, incident)
}

// VoteIncident godoc
// @Summary Vote on an incident
// @Description A repeat vote is a no-op; the opposite direction flips the vote
// @Tags incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param request body content.VoteRequest true "up or down"
// @Success 200 {object} response.SuccessResponse{data=Incident}
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /incidents/{id}/vote [post]
func (h *Handler) VoteIncident(c *gin.Context) {
	var req content.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}
	dir, err := content.ParseDirection(req.Direction)
	if err != nil {
		response.FromError(c, err)
		return
	}

	id := c.Param("id")
	if err := h.service.Vote(c.Request.Context(), auth.SessionFrom(c), id, dir); err != nil {
		response.FromError(c, err)
		return
	}

	incident, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, incident)
}

// Categories godoc
// @Summary List incident categories and severities
// @Tags incidents
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Router /incidents/categories [get]
func (h *Handler) Categories(c *gin.Context) {
	response.Success(c, gin.H{"categories": Categories, "severities": Severities})
}
