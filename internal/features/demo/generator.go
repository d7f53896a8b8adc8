package demo

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Generator produces the mock analyses. Nothing it returns is persisted.
type Generator struct {
	mu    sync.Mutex
	rng   *rand.Rand
	now   func() time.Time
	newID func() string
}

func NewGenerator(seed int64, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		rng:   rand.New(rand.NewSource(seed)),
		now:   now,
		newID: uuid.NewString,
	}
}

var mockIncidents = []MockIncident{
	{Type: "theft", Description: "Pickpocketing reported near the main square", Severity: "medium"},
	{Type: "harassment", Description: "Verbal harassment reported late at night", Severity: "medium"},
	{Type: "scam", Description: "Overcharging by unlicensed taxis", Severity: "low"},
	{Type: "accident", Description: "Scooter collision on a busy crossing", Severity: "high"},
	{Type: "weather", Description: "Flash flooding on low-lying streets", Severity: "high"},
	{Type: "theft", Description: "Bag snatching from cafe terraces", Severity: "medium"},
}

// RiskLevel labels a 0-99 score.
func RiskLevel(score int) string {
	switch {
	case score >= 70:
		return "high"
	case score >= 40:
		return "medium"
	}
	return "low"
}

func recommendation(level string) string {
	switch level {
	case "high":
		return "Exercise high caution. Avoid travelling alone after dark and keep valuables out of sight."
	case "medium":
		return "Stay alert in crowded areas and keep an eye on your belongings."
	}
	return "Generally safe. Follow usual travel precautions."
}

// Analyze returns a random risk score with one to three sample incidents.
func (g *Generator) Analyze(location string) LocationAnalysis {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().UTC()
	score := g.rng.Intn(100)
	level := RiskLevel(score)

	n := 1 + g.rng.Intn(3)
	incidents := make([]MockIncident, 0, n)
	for _, i := range g.rng.Perm(len(mockIncidents))[:n] {
		inc := mockIncidents[i]
		inc.ReportedAt = now.Add(-time.Duration(1+g.rng.Intn(30)) * 24 * time.Hour)
		incidents = append(incidents, inc)
	}

	return LocationAnalysis{
		Location:       location,
		RiskScore:      score,
		RiskLevel:      level,
		Recommendation: recommendation(level),
		Incidents:      incidents,
		AnalyzedAt:     now,
	}
}

func (g *Generator) Receive(req ReportIncidentRequest) ReportReceipt {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ReportReceipt{
		ID:          g.newID(),
		Status:      "received",
		Type:        req.Type,
		Description: req.Description,
		Location:    req.Location,
		ReceivedAt:  g.now().UTC(),
	}
}
