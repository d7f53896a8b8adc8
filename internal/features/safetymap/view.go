package safetymap

import (
	"errors"
	"sync"

	"github.com/xyz-asif/safetrip/internal/pkg/logger"
	"go.uber.org/zap"
)

// Handle identifies one overlay drawn on a Canvas.
type Handle int

// Canvas is the drawing surface a View renders onto.
type Canvas interface {
	AddZone(z Zone) Handle
	AddMarker(s Sighting) Handle
	AddHeatLayer(points []HeatPoint) Handle
	Remove(h Handle)
}

var ErrAlreadyMounted = errors.New("map view already mounted")

// View owns every overlay it draws. Any toggle change removes all of them before redrawing, so
// overlays never accumulate.
type View struct {
	mu      sync.Mutex
	canvas  Canvas
	data    Dataset
	toggles Toggles
	handles []Handle
	mounted bool
}

func NewView(canvas Canvas, data Dataset) *View {
	return &View{canvas: canvas, data: data, toggles: DefaultToggles}
}

// Mount draws the overlays for the given toggles. A mounted view must be unmounted before it can
// be mounted again.
func (v *View) Mount(t Toggles) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mounted {
		return ErrAlreadyMounted
	}
	v.mounted = true
	v.toggles = t
	v.draw()
	return nil
}

// SetToggles redraws every overlay. Before mount it only records the toggles.
func (v *View) SetToggles(t Toggles) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.toggles = t
	if !v.mounted {
		return
	}
	v.clear()
	v.draw()
}

// Unmount removes every overlay. It is safe to call on a view that is not mounted.
func (v *View) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clear()
	v.mounted = false
}

func (v *View) Toggles() Toggles {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.toggles
}

// Overlays returns how many overlay handles the view currently owns.
func (v *View) Overlays() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.handles)
}

func (v *View) draw() {
	for _, z := range v.data.Zones {
		v.handles = append(v.handles, v.canvas.AddZone(z))
	}
	if v.toggles.Incidents {
		for _, s := range v.data.Sightings {
			v.handles = append(v.handles, v.canvas.AddMarker(s))
		}
	}
	if v.toggles.Heatmap && len(v.data.Sightings) > 0 {
		points := make([]HeatPoint, 0, len(v.data.Sightings))
		for _, s := range v.data.Sightings {
			points = append(points, HeatPoint{Position: s.Position, Intensity: s.Intensity})
		}
		v.handles = append(v.handles, v.canvas.AddHeatLayer(points))
	}
	logger.Debug("map overlays drawn",
		zap.Int("overlays", len(v.handles)),
		zap.Bool("heatmap", v.toggles.Heatmap),
		zap.Bool("incidents", v.toggles.Incidents))
}

func (v *View) clear() {
	for _, h := range v.handles {
		v.canvas.Remove(h)
	}
	v.handles = nil
}
