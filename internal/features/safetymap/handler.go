package safetymap

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/safetrip/internal/pkg/response"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
)

type Handler struct {
	data Dataset
}

func NewHandler(data Dataset) *Handler {
	return &Handler{data: data}
}

// OverlaysResponse is the map payload.
type OverlaysResponse struct {
	Toggles  Toggles           `json:"toggles"`
	Zones    []Zone            `json:"zones"`
	Overlays FeatureCollection `json:"overlays"`
}

func toggle(c *gin.Context, name string, def bool) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.Invalid(name, name+" must be true or false")
	}
	return v, nil
}

// GetOverlays godoc
// @Summary Safety map overlays
// @Description Static risk zones, incident markers and the heat layer as GeoJSON features
// @Tags map
// @Produce json
// @Param heatmap query bool false "Include the heat layer" default(true)
// @Param incidents query bool false "Include incident markers" default(true)
// @Success 200 {object} response.SuccessResponse{data=OverlaysResponse}
// @Failure 422 {object} response.ErrorResponse
// @Router /map/overlays [get]
func (h *Handler) GetOverlays(c *gin.Context) {
	var t Toggles
	var err error
	if t.Heatmap, err = toggle(c, "heatmap", DefaultToggles.Heatmap); err != nil {
		response.FromError(c, err)
		return
	}
	if t.Incidents, err = toggle(c, "incidents", DefaultToggles.Incidents); err != nil {
		response.FromError(c, err)
		return
	}

	canvas := NewFeatureCanvas()
	view := NewView(canvas, h.data)
	if err := view.Mount(t); err != nil {
		response.FromError(c, err)
		return
	}
	overlays := canvas.Collection()
	view.Unmount()

	response.Success(c, OverlaysResponse{Toggles: t, Zones: h.data.Zones, Overlays: overlays})
}
