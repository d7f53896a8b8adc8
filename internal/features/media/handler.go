package media

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/safetrip/internal/pkg/response"
)

// Folder that loose uploads land in. Profile pictures use their own folder.
const uploadFolder = "incidents"

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// UploadMedia godoc
// @Summary Upload an image
// @Description Upload an incident photo to the object store and get its download URL
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image to upload"
// @Success 201 {object} response.SuccessResponse{data=Upload}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /media/upload [post]
func (h *Handler) UploadMedia(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required", "MISSING_FILE")
		return
	}

	upload, err := UploadImage(c.Request.Context(), h.store, uploadFolder, header)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, upload)
}
