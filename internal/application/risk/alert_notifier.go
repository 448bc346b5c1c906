package risk

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/ghxstship/backend/internal/application/notification"
	"github.com/ghxstship/backend/internal/domain/project"
	"github.com/ghxstship/backend/internal/domain/risk"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/ghxstship/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

var alertBody = template.Must(template.New("risk-alert").Parse(`Project {{.Project.Code}} ({{.Project.Name}}) has raised a risk alert.

Overall score: {{printf "%.1f" .Event.OverallScore}} ({{.Event.Level}})

Findings at or above the alert threshold:
{{range .Event.Findings}}
- [{{.Category}}] {{.Title}} (score {{.Score}})
  {{.Description}}
  Suggested mitigation: {{.Mitigation}}
{{end}}`))

// AlertNotifier emails the project owner when a RiskAlertRaised event is
// published. Projects without an owner email are skipped.
type AlertNotifier struct {
	projects project.ProjectRepository
	mailer   notification.Mailer
	logger   *zap.Logger
}

// NewAlertNotifier creates an AlertNotifier
func NewAlertNotifier(projects project.ProjectRepository, mailer notification.Mailer, log *zap.Logger) *AlertNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &AlertNotifier{projects: projects, mailer: mailer, logger: log}
}

// EventTypes returns the events this handler consumes
func (n *AlertNotifier) EventTypes() []string {
	return []string{risk.EventTypeRiskAlertRaised}
}

// Handle sends the alert email
func (n *AlertNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	alert, ok := event.(*risk.RiskAlertRaisedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	p, err := n.projects.FindByIDForTenant(ctx, alert.TenantID(), alert.ProjectID)
	if err != nil {
		return fmt.Errorf("load project %s: %w", alert.ProjectID, err)
	}
	if p.OwnerEmail == "" {
		logger.Enrich(ctx, n.logger).Debug("Risk alert not emailed, project has no owner email",
			zap.String("project_id", p.ID.String()))
		return nil
	}

	var body bytes.Buffer
	if err := alertBody.Execute(&body, struct {
		Project *project.Project
		Event   *risk.RiskAlertRaisedEvent
	}{p, alert}); err != nil {
		return fmt.Errorf("render alert email: %w", err)
	}

	return n.mailer.Send(ctx, notification.Message{
		To:      []string{p.OwnerEmail},
		Subject: fmt.Sprintf("[GHXSTSHIP] Risk alert for %s: %s", p.Code, alert.Level),
		Body:    body.String(),
	})
}

var _ shared.EventHandler = (*AlertNotifier)(nil)
