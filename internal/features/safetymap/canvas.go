package safetymap

import (
	"sort"
	"sync"
)

// Geometry follows the GeoJSON layout: coordinates are [lng, lat].
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// FeatureCanvas records overlays as GeoJSON features.
type FeatureCanvas struct {
	mu       sync.Mutex
	next     Handle
	features map[Handle]Feature
}

func NewFeatureCanvas() *FeatureCanvas {
	return &FeatureCanvas{features: make(map[Handle]Feature)}
}

func point(p LatLng) Geometry {
	return Geometry{Type: "Point", Coordinates: []float64{p.Lng, p.Lat}}
}

func (c *FeatureCanvas) add(f Feature) Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	c.features[c.next] = f
	return c.next
}

func (c *FeatureCanvas) AddZone(z Zone) Handle {
	return c.add(Feature{
		Type:     "Feature",
		Geometry: point(z.Center),
		Properties: map[string]interface{}{
			"layer":        "zone",
			"id":           z.ID,
			"name":         z.Name,
			"risk":         z.Risk,
			"color":        z.Risk.Color(),
			"radiusMeters": z.RadiusMeters,
			"description":  z.Description,
		},
	})
}

func (c *FeatureCanvas) AddMarker(s Sighting) Handle {
	return c.add(Feature{
		Type:     "Feature",
		Geometry: point(s.Position),
		Properties: map[string]interface{}{
			"layer":    "incident",
			"id":       s.ID,
			"title":    s.Title,
			"category": s.Category,
			"severity": s.Severity,
		},
	})
}

func (c *FeatureCanvas) AddHeatLayer(points []HeatPoint) Handle {
	coords := make([][]float64, 0, len(points))
	weights := make([]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Position.Lng, p.Position.Lat})
		weights = append(weights, p.Intensity)
	}
	return c.add(Feature{
		Type:     "Feature",
		Geometry: Geometry{Type: "MultiPoint", Coordinates: coords},
		Properties: map[string]interface{}{
			"layer":   "heatmap",
			"weights": weights,
		},
	})
}

func (c *FeatureCanvas) Remove(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.features, h)
}

// Len returns the number of live features.
func (c *FeatureCanvas) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.features)
}

// Collection returns the live features in drawing order.
func (c *FeatureCanvas) Collection() FeatureCollection {
	c.mu.Lock()
	defer c.mu.Unlock()

	handles := make([]Handle, 0, len(c.features))
	for h := range c.features {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	out := FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(handles))}
	for _, h := range handles {
		out.Features = append(out.Features, c.features[h])
	}
	return out
}
