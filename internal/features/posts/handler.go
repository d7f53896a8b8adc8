package posts

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

// ListPosts godoc
// @Summary List community posts
// @Description Newest first. q filters the returned page by title, body, author or tag.
// @Tags community
// @Produce json
// @Param category query string false "discussion, question, tip, warning or local-insights"
// @Param q query string false "Search text"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} response.PaginatedResponse{data=[]Post}
// @Failure 422 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /community/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	p := pagination.FromRequest(c.Query("page"), c.Query("limit"))
	view := pages.New[Post, CreatePostRequest](h.service, auth.SessionFrom(c), p)
	defer view.Close()

	view.SetSearch(c.Query("q"))
	if err := view.Show(c.Request.Context(), c.Query("category"), p.Page); err != nil {
		response.FromError(c, err)
		return
	}

	response.Paginated(c, view.State().Items, p.Page, p.Limit)
}

// CreatePost godoc
// @Summary Create a community post
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post"
// @Success 201 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /community/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
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

// GetPost godoc
// @Summary Get a community post
// @Description Counts a view
// @Tags community
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.SuccessResponse{data=Post}
// @Failure 404 {object} response.ErrorResponse
// @Router /community/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.service.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, post)
}

// VotePost godoc
// @Summary Vote on a community post
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body content.VoteRequest true "up or down"
// @Success 200 {object} response.SuccessResponse{data=Post}
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /community/posts/{id}/vote [post]
func (h *Handler) VotePost(c *gin.Context) {
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

	post, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, post)
}
