package demo

import "time"

type AnalyzeLocationRequest struct {
	Location string   `json:"location" binding:"required" example:"Barcelona, Spain"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
}

type MockIncident struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	ReportedAt  time.Time `json:"reportedAt"`
}

type LocationAnalysis struct {
	Location       string         `json:"location"`
	RiskScore      int            `json:"riskScore"`
	RiskLevel      string         `json:"riskLevel"`
	Recommendation string         `json:"recommendation"`
	Incidents      []MockIncident `json:"incidents"`
	AnalyzedAt     time.Time      `json:"analyzedAt"`
}

type ReportIncidentRequest struct {
	Type        string `json:"type" binding:"required" example:"theft"`
	Description string `json:"description" binding:"required" example:"Phone taken from table"`
	Location    string `json:"location" binding:"required" example:"Plaça Reial"`
}

type ReportReceipt struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	ReceivedAt  time.Time `json:"receivedAt"`
}
