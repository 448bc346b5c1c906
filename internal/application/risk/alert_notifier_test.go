package risk

import (
	"context"
	"errors"
	"testing"

	"github.com/ghxstship/backend/internal/domain/risk"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func alertEvent(t *testing.T, tenantID, projectID uuid.UUID) *risk.RiskAlertRaisedEvent {
	t.Helper()
	eval := risk.Evaluation{
		Findings: []risk.Finding{
			risk.NewFinding(risk.CategoryFinancial, risk.TitleBudgetNearlyExhausted, "95% of budget spent", 5, 4, "Freeze discretionary spend"),
		},
		OverallScore: 8,
		AlertRaised:  true,
		Level:        risk.LevelCritical,
	}
	a, err := risk.NewAssessment(tenantID, projectID, eval, testNow)
	require.NoError(t, err)
	return a.GetDomainEvents()[0].(*risk.RiskAlertRaisedEvent)
}

func TestAlertNotifier_SendsToOwner(t *testing.T) {
	tenantID := uuid.New()
	p, _, _ := troubledProject(t, tenantID)
	projects := new(MockProjectRepository)
	projects.On("FindByIDForTenant", mock.Anything, tenantID, p.ID).Return(p, nil)
	mailer := &capturingMailer{}

	n := NewAlertNotifier(projects, mailer, nil)
	assert.Equal(t, []string{risk.EventTypeRiskAlertRaised}, n.EventTypes())

	require.NoError(t, n.Handle(context.Background(), alertEvent(t, tenantID, p.ID)))
	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, []string{"owner@example.com"}, msg.To)
	assert.Contains(t, msg.Subject, "FEST-26")
	assert.Contains(t, msg.Subject, "critical")
	assert.Contains(t, msg.Body, "Overall score: 8.0 (critical)")
	assert.Contains(t, msg.Body, "Budget nearly exhausted (score 8)")
	assert.Contains(t, msg.Body, "Freeze discretionary spend")
}

func TestAlertNotifier_SkipsWithoutOwner(t *testing.T) {
	tenantID := uuid.New()
	p, _, _ := troubledProject(t, tenantID)
	p.OwnerEmail = ""
	projects := new(MockProjectRepository)
	projects.On("FindByIDForTenant", mock.Anything, tenantID, p.ID).Return(p, nil)
	mailer := &capturingMailer{}

	require.NoError(t, NewAlertNotifier(projects, mailer, nil).Handle(context.Background(), alertEvent(t, tenantID, p.ID)))
	assert.Empty(t, mailer.sent)
}

func TestAlertNotifier_Errors(t *testing.T) {
	tenantID := uuid.New()
	projects := new(MockProjectRepository)
	missing := uuid.New()
	projects.On("FindByIDForTenant", mock.Anything, tenantID, missing).Return(nil, shared.ErrNotFound)

	n := NewAlertNotifier(projects, &capturingMailer{}, nil)
	err := n.Handle(context.Background(), alertEvent(t, tenantID, missing))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	other := shared.NewBaseDomainEvent("Other", "X", uuid.New(), tenantID)
	assert.Error(t, n.Handle(context.Background(), &other))

	p, _, _ := troubledProject(t, tenantID)
	projects.On("FindByIDForTenant", mock.Anything, tenantID, p.ID).Return(p, nil)
	failing := NewAlertNotifier(projects, &capturingMailer{err: errors.New("smtp down")}, nil)
	assert.EqualError(t, failing.Handle(context.Background(), alertEvent(t, tenantID, p.ID)), "smtp down")
}
