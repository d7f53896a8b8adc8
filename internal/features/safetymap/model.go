package safetymap

// LatLng is a WGS84 position.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Color is the fill used for zones of this level.
func (r RiskLevel) Color() string {
	switch r {
	case RiskHigh:
		return "#ef4444"
	case RiskMedium:
		return "#f59e0b"
	}
	return "#22c55e"
}

// Zone is a circular risk area.
type Zone struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Center       LatLng    `json:"center"`
	RadiusMeters float64   `json:"radiusMeters"`
	Risk         RiskLevel `json:"risk"`
	Description  string    `json:"description"`
}

// Sighting is a sample incident drawn as a marker and as a heat point.
type Sighting struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Severity  string  `json:"severity"`
	Position  LatLng  `json:"position"`
	Intensity float64 `json:"intensity"`
}

// HeatPoint is one weighted sample of the heat layer.
type HeatPoint struct {
	Position  LatLng
	Intensity float64
}

// Toggles are the user-controlled layer switches.
type Toggles struct {
	Heatmap   bool `json:"heatmap"`
	Incidents bool `json:"incidents"`
}

// DefaultToggles shows every layer.
var DefaultToggles = Toggles{Heatmap: true, Incidents: true}

// Dataset is the static content a View draws.
type Dataset struct {
	Zones     []Zone
	Sightings []Sighting
}

// SampleData returns the built-in sample zones and incidents around central Barcelona.
func SampleData() Dataset {
	return Dataset{
		Zones: []Zone{
			{ID: "zone-ramblas", Name: "La Rambla", Center: LatLng{41.3809, 2.1734}, RadiusMeters: 450, Risk: RiskHigh,
				Description: "Frequent pickpocketing in crowds, especially near metro exits"},
			{ID: "zone-raval", Name: "El Raval", Center: LatLng{41.3797, 2.1682}, RadiusMeters: 400, Risk: RiskMedium,
				Description: "Stay on main streets after dark"},
			{ID: "zone-gothic", Name: "Gothic Quarter", Center: LatLng{41.3839, 2.1763}, RadiusMeters: 350, Risk: RiskMedium,
				Description: "Narrow lanes, watch for distraction scams"},
			{ID: "zone-sants", Name: "Sants Station", Center: LatLng{41.3791, 2.1400}, RadiusMeters: 300, Risk: RiskMedium,
				Description: "Luggage theft reported on platforms"},
			{ID: "zone-gracia", Name: "Gràcia", Center: LatLng{41.4036, 2.1565}, RadiusMeters: 600, Risk: RiskLow,
				Description: "Residential and generally calm"},
			{ID: "zone-eixample", Name: "Eixample", Center: LatLng{41.3917, 2.1649}, RadiusMeters: 800, Risk: RiskLow,
				Description: "Well lit and busy at most hours"},
		},
		Sightings: []Sighting{
			{ID: "s1", Title: "Phone snatched on metro", Category: "theft", Severity: "medium", Position: LatLng{41.3816, 2.1730}, Intensity: 0.8},
			{ID: "s2", Title: "Bag cut open at market", Category: "theft", Severity: "medium", Position: LatLng{41.3818, 2.1716}, Intensity: 0.7},
			{ID: "s3", Title: "Aggressive street vendor", Category: "harassment", Severity: "low", Position: LatLng{41.3790, 2.1757}, Intensity: 0.4},
			{ID: "s4", Title: "Scooter collision", Category: "accident", Severity: "high", Position: LatLng{41.3925, 2.1641}, Intensity: 0.6},
			{ID: "s5", Title: "Fake petition scam", Category: "theft", Severity: "low", Position: LatLng{41.3842, 2.1770}, Intensity: 0.5},
			{ID: "s6", Title: "Suitcase stolen on platform", Category: "theft", Severity: "high", Position: LatLng{41.3793, 2.1405}, Intensity: 0.9},
			{ID: "s7", Title: "Heat exhaustion at viewpoint", Category: "medical", Severity: "medium", Position: LatLng{41.4145, 2.1527}, Intensity: 0.3},
			{ID: "s8", Title: "Followed late at night", Category: "harassment", Severity: "high", Position: LatLng{41.3795, 2.1679}, Intensity: 0.8},
		},
	}
}
