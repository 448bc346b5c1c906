// Package risk assesses projects against the risk rules, keeps assessment
// history, and alerts project owners.
package risk

import (
	"context"
	"fmt"
	"time"

	"github.com/ghxstship/backend/internal/domain/project"
	"github.com/ghxstship/backend/internal/domain/risk"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/ghxstship/backend/internal/infrastructure/logger"
	"github.com/ghxstship/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// RiskService runs risk assessments
type RiskService struct {
	projects    project.ProjectRepository
	schedule    project.ScheduleRepository
	crew        project.CrewRepository
	assessments risk.AssessmentRepository
	events      shared.EventPublisher
	metrics     *telemetry.DomainMetrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewRiskService creates a RiskService
func NewRiskService(
	projects project.ProjectRepository,
	schedule project.ScheduleRepository,
	crew project.CrewRepository,
	assessments risk.AssessmentRepository,
	events shared.EventPublisher,
	log *zap.Logger,
) *RiskService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RiskService{
		projects:    projects,
		schedule:    schedule,
		crew:        crew,
		assessments: assessments,
		events:      events,
		logger:      log,
		now:         time.Now,
	}
}

// SetDomainMetrics attaches metric instruments
func (s *RiskService) SetDomainMetrics(m *telemetry.DomainMetrics) {
	s.metrics = m
}

// SetClock overrides the evaluation clock
func (s *RiskService) SetClock(now func() time.Time) {
	s.now = now
}

// AssessProject scores a project's current state, stores the snapshot and
// publishes RiskAlertRaised when a finding reaches the alert threshold.
func (s *RiskService) AssessProject(ctx context.Context, tenantID, projectID, userID uuid.UUID) (resp *AssessmentResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, "RiskService", "AssessProject",
		attribute.String("project.id", projectID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	p, err := s.projects.FindByIDForTenant(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	items, err := s.schedule.FindByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	crew, err := s.crew.FindByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, fmt.Errorf("load crew: %w", err)
	}

	now := s.now()
	eval := risk.Evaluate(now, risk.Input{
		EndDate:     p.EndDate,
		Schedule:    project.Windows(items),
		Assignments: project.Assignments(crew),
		Budget:      p.RiskBudget(),
	})

	assessment, err := risk.NewAssessment(tenantID, projectID, eval, now)
	if err != nil {
		return nil, err
	}
	assessment.SetCreatedBy(userID)
	if err := s.assessments.Save(ctx, assessment); err != nil {
		return nil, err
	}

	if err := shared.PublishPending(ctx, s.events, assessment); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to publish risk events", zap.Error(err))
	}

	span.SetAttributes(
		attribute.Float64("risk.overall_score", eval.OverallScore),
		attribute.Bool("risk.alert", eval.AlertRaised),
	)
	s.metrics.RecordRiskEvaluation(ctx, tenantID, string(eval.Level), eval.AlertRaised)

	out := ToAssessmentResponse(assessment)
	return &out, nil
}

// History lists a project's assessments, newest first
func (s *RiskService) History(ctx context.Context, tenantID, projectID uuid.UUID, page, pageSize int) ([]AssessmentResponse, int64, error) {
	if _, err := s.projects.FindByIDForTenant(ctx, tenantID, projectID); err != nil {
		return nil, 0, err
	}

	filter := shared.DefaultFilter()
	filter.OrderBy = "assessed_at"
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	items, err := s.assessments.FindByProject(ctx, tenantID, projectID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.assessments.CountByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, 0, err
	}

	out := make([]AssessmentResponse, len(items))
	for i := range items {
		out[i] = ToAssessmentResponse(&items[i])
	}
	return out, total, nil
}

// Evaluate scores posted attributes without touching storage
func (s *RiskService) Evaluate(ctx context.Context, tenantID uuid.UUID, req EvaluateRequest) (*EvaluationResponse, error) {
	windows := make([]risk.Window, len(req.Schedule))
	for i, w := range req.Schedule {
		if !w.EndsAt.After(w.StartsAt) {
			return nil, shared.NewDomainError("INVALID_WINDOW", fmt.Sprintf("Schedule item %d must end after it starts", i+1))
		}
		windows[i] = risk.Window{Label: w.Label, Start: w.StartsAt, End: w.EndsAt}
	}
	crew := make([]risk.Assignment, len(req.Crew))
	for i, c := range req.Crew {
		crew[i] = risk.Assignment{Name: c.Name, Status: c.Status}
	}

	now := s.now()
	if req.AsOf != nil {
		now = *req.AsOf
	}
	eval := risk.Evaluate(now, risk.Input{
		EndDate:     req.EndDate,
		Schedule:    windows,
		Assignments: crew,
		Budget:      risk.Budget{Total: req.Budget, Spent: req.Spent},
	})
	s.metrics.RecordRiskEvaluation(ctx, tenantID, string(eval.Level), eval.AlertRaised)

	return &EvaluationResponse{
		Findings:     toFindingResponses(eval.Findings),
		OverallScore: eval.OverallScore,
		AlertRaised:  eval.AlertRaised,
		RiskLevel:    string(eval.Level),
		EvaluatedAt:  now,
	}, nil
}

// ScanTenant reassesses every active project of a tenant. A project that
// fails is logged and counted but does not fail the scan: the job is retried
// as a whole, and a retry would reassess (and re-alert on) the projects that
// already succeeded. Only listing failures and cancellation are returned.
func (s *RiskService) ScanTenant(ctx context.Context, tenantID uuid.UUID) error {
	ctx = logger.WithTenantID(ctx, tenantID.String())
	log := logger.Enrich(ctx, s.logger)

	projects, err := s.projects.FindByStatus(ctx, tenantID, project.StatusActive)
	if err != nil {
		return fmt.Errorf("list active projects: %w", err)
	}

	alerts, failures := 0, 0
	for _, p := range projects {
		if err := ctx.Err(); err != nil {
			return err
		}
		resp, err := s.AssessProject(ctx, tenantID, p.ID, uuid.Nil)
		if err != nil {
			failures++
			s.metrics.RecordRiskScanFailure(ctx, tenantID)
			log.Warn("Risk assessment failed",
				zap.String("project_id", p.ID.String()),
				zap.String("project_code", p.Code),
				zap.Error(err))
			continue
		}
		if resp.AlertRaised {
			alerts++
		}
	}

	log.Info("Risk scan completed",
		zap.Int("projects", len(projects)),
		zap.Int("alerts", alerts),
		zap.Int("failures", failures),
	)
	return nil
}
