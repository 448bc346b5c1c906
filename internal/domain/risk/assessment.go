package risk

import (
	"time"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeAssessment is the aggregate type name used in events
const AggregateTypeAssessment = "RiskAssessment"

// Assessment is a persisted snapshot of one evaluation of a project
type Assessment struct {
	shared.TenantAggregateRoot
	ProjectID    uuid.UUID `gorm:"type:uuid;not null;index"`
	OverallScore float64   `gorm:"not null"`
	AlertRaised  bool      `gorm:"not null;default:false"`
	Level        Level     `gorm:"type:varchar(20);not null"`
	Findings     []Finding `gorm:"serializer:json;type:jsonb"`
	AssessedAt   time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Assessment) TableName() string {
	return "risk_assessments"
}

// NewAssessment records an evaluation for a project. When the evaluation
// raised an alert a RiskAlertRaisedEvent is queued on the aggregate.
func NewAssessment(tenantID, projectID uuid.UUID, eval Evaluation, assessedAt time.Time) (*Assessment, error) {
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}

	findings := eval.Findings
	if findings == nil {
		findings = []Finding{}
	}

	a := &Assessment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProjectID:           projectID,
		OverallScore:        eval.OverallScore,
		AlertRaised:         eval.AlertRaised,
		Level:               eval.Level,
		Findings:            findings,
		AssessedAt:          assessedAt,
	}

	if eval.AlertRaised {
		a.AddDomainEvent(NewRiskAlertRaisedEvent(a))
	}
	return a, nil
}

// AlertFindings returns the findings at or above the alert threshold
func (a *Assessment) AlertFindings() []Finding {
	var out []Finding
	for _, f := range a.Findings {
		if f.IsAlert() {
			out = append(out, f)
		}
	}
	return out
}
