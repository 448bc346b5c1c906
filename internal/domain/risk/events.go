package risk

import (
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event type constants
const (
	EventTypeRiskAlertRaised = "RiskAlertRaised"
)

// RiskAlertRaisedEvent is published when an assessment contains a finding at
// or above AlertThreshold
type RiskAlertRaisedEvent struct {
	shared.BaseDomainEvent
	AssessmentID uuid.UUID `json:"assessment_id"`
	ProjectID    uuid.UUID `json:"project_id"`
	OverallScore float64   `json:"overall_score"`
	Level        Level     `json:"level"`
	Findings     []Finding `json:"findings"`
}

// NewRiskAlertRaisedEvent creates the event for an assessment
func NewRiskAlertRaisedEvent(a *Assessment) *RiskAlertRaisedEvent {
	return &RiskAlertRaisedEvent{
		BaseDomainEvent: shared.NewBaseDomainEventAt(EventTypeRiskAlertRaised, AggregateTypeAssessment, a.ID, a.TenantID, a.AssessedAt),
		AssessmentID:    a.ID,
		ProjectID:       a.ProjectID,
		OverallScore:    a.OverallScore,
		Level:           a.Level,
		Findings:        a.AlertFindings(),
	}
}
