// Package project manages projects with their schedule and crew.
package project

import (
	"context"
	"errors"
	"strings"

	"github.com/ghxstship/backend/internal/domain/project"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// spendAttempts bounds the reload-and-retry loop on version conflicts
const spendAttempts = 3

// ProjectService handles project operations
type ProjectService struct {
	projects project.ProjectRepository
	schedule project.ScheduleRepository
	crew     project.CrewRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projects project.ProjectRepository,
	schedule project.ScheduleRepository,
	crew project.CrewRepository,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		schedule: schedule,
		crew:     crew,
	}
}

// Create creates a project
func (s *ProjectService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateProjectRequest) (*ProjectResponse, error) {
	p, err := project.NewProject(tenantID, req.Code, req.Name, req.Budget)
	if err != nil {
		return nil, err
	}
	if err := p.Update(req.Name, req.Description, strings.TrimSpace(req.OwnerEmail)); err != nil {
		return nil, err
	}
	if err := p.SetDates(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	if req.Status != "" {
		if err := p.ChangeStatus(project.Status(req.Status)); err != nil {
			return nil, err
		}
	}
	// A new row starts at version 1 however many setters ran.
	p.Version = 1
	p.SetCreatedBy(userID)

	if err := s.projects.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToProjectResponse(p)
	return &resp, nil
}

// GetByID returns a project with its schedule and crew
func (s *ProjectService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ProjectDetailResponse, error) {
	p, err := s.projects.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	items, err := s.schedule.FindByProject(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	crew, err := s.crew.FindByProject(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	resp := &ProjectDetailResponse{
		ProjectResponse: ToProjectResponse(p),
		Schedule:        make([]ScheduleItemResponse, len(items)),
		Crew:            make([]CrewAssignmentResponse, len(crew)),
	}
	for i := range items {
		resp.Schedule[i] = toScheduleItemResponse(&items[i])
	}
	for i := range crew {
		resp.Crew[i] = toCrewAssignmentResponse(&crew[i])
	}
	return resp, nil
}

// List returns a page of projects
func (s *ProjectService) List(ctx context.Context, tenantID uuid.UUID, filter ProjectListFilter) ([]ProjectResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter = domainFilter.Where("status", filter.Status)
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
		domainFilter.OrderDir = filter.OrderDir
	}

	projects, err := s.projects.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.projects.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ProjectResponse, len(projects))
	for i := range projects {
		out[i] = ToProjectResponse(&projects[i])
	}
	return out, total, nil
}

// Update applies a partial update. Concurrent writers get
// ErrConcurrencyConflict.
func (s *ProjectService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateProjectRequest) (*ProjectResponse, error) {
	p, err := s.projects.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	loaded := p.Version

	name, description, owner := p.Name, p.Description, p.OwnerEmail
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.OwnerEmail != nil {
		owner = strings.TrimSpace(*req.OwnerEmail)
	}
	if err := p.Update(name, description, owner); err != nil {
		return nil, err
	}

	if req.StartDate != nil || req.EndDate != nil {
		start, end := p.StartDate, p.EndDate
		if req.StartDate != nil {
			start = req.StartDate
		}
		if req.EndDate != nil {
			end = req.EndDate
		}
		if err := p.SetDates(start, end); err != nil {
			return nil, err
		}
	}
	if req.Budget != nil {
		if err := p.SetBudget(*req.Budget); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := p.ChangeStatus(project.Status(*req.Status)); err != nil {
			return nil, err
		}
	}

	// One save is one version step.
	p.Version = loaded + 1
	if err := s.projects.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToProjectResponse(p)
	return &resp, nil
}

// Delete removes a project with its schedule and crew
func (s *ProjectService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.projects.DeleteForTenant(ctx, tenantID, id)
}

// RecordSpend adds amount to the project's spend. A version conflict reloads
// the project and tries again, up to spendAttempts times.
func (s *ProjectService) RecordSpend(ctx context.Context, tenantID, id uuid.UUID, amount decimal.Decimal) (*ProjectResponse, error) {
	var lastErr error
	for attempt := 0; attempt < spendAttempts; attempt++ {
		p, err := s.projects.FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		if err := p.RecordSpend(amount); err != nil {
			return nil, err
		}
		err = s.projects.Save(ctx, p)
		if err == nil {
			resp := ToProjectResponse(p)
			return &resp, nil
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// AddScheduleItem adds a schedule entry to a project
func (s *ProjectService) AddScheduleItem(ctx context.Context, tenantID, projectID uuid.UUID, req AddScheduleItemRequest) (*ScheduleItemResponse, error) {
	if _, err := s.projects.FindByIDForTenant(ctx, tenantID, projectID); err != nil {
		return nil, err
	}
	item, err := project.NewScheduleItem(tenantID, projectID, req.Title, req.Location, req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, err
	}
	if err := s.schedule.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := toScheduleItemResponse(item)
	return &resp, nil
}

// RemoveScheduleItem deletes a schedule entry of a project
func (s *ProjectService) RemoveScheduleItem(ctx context.Context, tenantID, projectID, itemID uuid.UUID) error {
	item, err := s.schedule.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return err
	}
	if item.ProjectID != projectID {
		return shared.ErrNotFound
	}
	return s.schedule.DeleteForTenant(ctx, tenantID, itemID)
}

// AddCrewAssignment assigns a crew member to a project
func (s *ProjectService) AddCrewAssignment(ctx context.Context, tenantID, projectID uuid.UUID, req AddCrewRequest) (*CrewAssignmentResponse, error) {
	if _, err := s.projects.FindByIDForTenant(ctx, tenantID, projectID); err != nil {
		return nil, err
	}
	a, err := project.NewCrewAssignment(tenantID, projectID, req.MemberName, req.Email, req.Role)
	if err != nil {
		return nil, err
	}
	if err := s.crew.Save(ctx, a); err != nil {
		return nil, err
	}
	resp := toCrewAssignmentResponse(a)
	return &resp, nil
}

// UpdateCrewStatus sets a crew assignment's status
func (s *ProjectService) UpdateCrewStatus(ctx context.Context, tenantID, projectID, assignmentID uuid.UUID, req UpdateCrewStatusRequest) (*CrewAssignmentResponse, error) {
	a, err := s.crew.FindByIDForTenant(ctx, tenantID, assignmentID)
	if err != nil {
		return nil, err
	}
	if a.ProjectID != projectID {
		return nil, shared.ErrNotFound
	}
	if err := a.SetStatus(project.AssignmentStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.crew.Save(ctx, a); err != nil {
		return nil, err
	}
	resp := toCrewAssignmentResponse(a)
	return &resp, nil
}
