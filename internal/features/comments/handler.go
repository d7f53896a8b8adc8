package comments

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/safetrip/internal/features/auth"
	"github.com/xyz-asif/safetrip/internal/features/content"
	"github.com/xyz-asif/safetrip/internal/pkg/pagination"
	"github.com/xyz-asif/safetrip/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// listFor builds the list handler for one parent type.
func (h *Handler) listFor(parentType ParentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := pagination.FromRequest(c.Query("page"), c.Query("limit"))
		comments, err := h.service.List(c.Request.Context(), parentType, c.Param("id"), p)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Paginated(c, comments, p.Page, p.Limit)
	}
}

func (h *Handler) createFor(parentType ParentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindJSONError(c, err)
			return
		}

		id, err := h.service.Create(c.Request.Context(), auth.SessionFrom(c), parentType, c.Param("id"), req)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Created(c, gin.H{"id": id})
	}
}

// ListIncidentComments godoc
// @Summary List comments on an incident
// @Tags comments
// @Produce json
// @Param id path string true "Incident ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} response.PaginatedResponse{data=[]Comment}
// @Router /incidents/{id}/comments [get]
func (h *Handler) ListIncidentComments(c *gin.Context) {
	h.listFor(ParentIncident)(c)
}

// CreateIncidentComment godoc
// @Summary Comment on an incident
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param request body CreateCommentRequest true "Comment"
// @Success 201 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /incidents/{id}/comments [post]
func (h *Handler) CreateIncidentComment(c *gin.Context) {
	h.createFor(ParentIncident)(c)
}

// ListPostComments godoc
// @Summary List comments on a community post
// @Tags comments
// @Produce json
// @Param id path string true "Post ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} response.PaginatedResponse{data=[]Comment}
// @Router /community/posts/{id}/comments [get]
func (h *Handler) ListPostComments(c *gin.Context) {
	h.listFor(ParentPost)(c)
}

// CreatePostComment godoc
// @Summary Comment on a community post
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body CreateCommentRequest true "Comment"
// @Success 201 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /community/posts/{id}/comments [post]
func (h *Handler) CreatePostComment(c *gin.Context) {
	h.createFor(ParentPost)(c)
}

// UpdateComment godoc
// @Summary Edit a comment
// @Description Only the author may edit. The comment is marked as edited.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Param request body UpdateCommentRequest true "New text"
// @Success 200 {object} response.SuccessResponse{data=Comment}
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /comments/{id} [patch]
func (h *Handler) UpdateComment(c *gin.Context) {
	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	comment, err := h.service.Edit(c.Request.Context(), auth.SessionFrom(c), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, comment)
}

// VoteComment godoc
// @Summary Vote on a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Param request body content.VoteRequest true "up or down"
// @Success 200 {object} response.SuccessResponse{data=Comment}
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /comments/{id}/vote [post]
func (h *Handler) VoteComment(c *gin.Context) {
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
	comment, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, comment)
}
