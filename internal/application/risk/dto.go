package risk

import (
	"time"

	"github.com/ghxstship/backend/internal/domain/risk"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WindowInput is one schedule item in a stateless evaluation
type WindowInput struct {
	Label    string    `json:"label" binding:"max=200"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
}

// CrewInput is one crew assignment in a stateless evaluation
type CrewInput struct {
	Name   string `json:"name" binding:"required,max=200"`
	Status string `json:"status" binding:"required,oneof=pending confirmed declined"`
}

// EvaluateRequest carries project attributes to score without persisting
type EvaluateRequest struct {
	EndDate  *time.Time      `json:"end_date"`
	Schedule []WindowInput   `json:"schedule" binding:"omitempty,dive"`
	Crew     []CrewInput     `json:"crew" binding:"omitempty,dive"`
	Budget   decimal.Decimal `json:"budget"`
	Spent    decimal.Decimal `json:"spent"`
	// AsOf overrides the evaluation instant, defaulting to now
	AsOf *time.Time `json:"as_of"`
}

// FindingResponse is one risk finding
type FindingResponse struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Likelihood  int    `json:"likelihood"`
	Impact      int    `json:"impact"`
	Score       int    `json:"score"`
	Mitigation  string `json:"mitigation"`
}

// EvaluationResponse is the result of scoring
type EvaluationResponse struct {
	Findings     []FindingResponse `json:"findings"`
	OverallScore float64           `json:"overall_score"`
	AlertRaised  bool              `json:"alert_raised"`
	RiskLevel    string            `json:"risk_level"`
	EvaluatedAt  time.Time         `json:"evaluated_at"`
}

// AssessmentResponse is a persisted assessment snapshot
type AssessmentResponse struct {
	ID           uuid.UUID         `json:"id"`
	ProjectID    uuid.UUID         `json:"project_id"`
	Findings     []FindingResponse `json:"findings"`
	OverallScore float64           `json:"overall_score"`
	AlertRaised  bool              `json:"alert_raised"`
	RiskLevel    string            `json:"risk_level"`
	AssessedAt   time.Time         `json:"assessed_at"`
	CreatedAt    time.Time         `json:"created_at"`
}

func toFindingResponses(findings []risk.Finding) []FindingResponse {
	out := make([]FindingResponse, len(findings))
	for i, f := range findings {
		out[i] = FindingResponse{
			Category:    string(f.Category),
			Title:       f.Title,
			Description: f.Description,
			Likelihood:  f.Likelihood,
			Impact:      f.Impact,
			Score:       f.Score,
			Mitigation:  f.Mitigation,
		}
	}
	return out
}

// ToAssessmentResponse converts a domain assessment
func ToAssessmentResponse(a *risk.Assessment) AssessmentResponse {
	return AssessmentResponse{
		ID:           a.ID,
		ProjectID:    a.ProjectID,
		Findings:     toFindingResponses(a.Findings),
		OverallScore: a.OverallScore,
		AlertRaised:  a.AlertRaised,
		RiskLevel:    string(a.Level),
		AssessedAt:   a.AssessedAt,
		CreatedAt:    a.CreatedAt,
	}
}
