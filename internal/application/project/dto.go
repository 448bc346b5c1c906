package project

import (
	"time"

	"github.com/ghxstship/backend/internal/domain/project"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Code        string          `json:"code" binding:"required,min=1,max=50"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Status      string          `json:"status" binding:"omitempty,oneof=planning active completed cancelled"`
	StartDate   *time.Time      `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
	Budget      decimal.Decimal `json:"budget"`
	OwnerEmail  string          `json:"owner_email" binding:"omitempty,email,max=200"`
}

// UpdateProjectRequest represents a partial project update
type UpdateProjectRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Status      *string          `json:"status" binding:"omitempty,oneof=planning active completed cancelled"`
	StartDate   *time.Time       `json:"start_date"`
	EndDate     *time.Time       `json:"end_date"`
	Budget      *decimal.Decimal `json:"budget"`
	OwnerEmail  *string          `json:"owner_email" binding:"omitempty,email,max=200"`
}

// ProjectListFilter holds list parameters
type ProjectListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=planning active completed cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	Budget      decimal.Decimal `json:"budget"`
	Spent       decimal.Decimal `json:"spent"`
	Currency    string          `json:"currency"`
	OwnerEmail  string          `json:"owner_email,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ProjectDetailResponse adds schedule and crew to a project
type ProjectDetailResponse struct {
	ProjectResponse
	Schedule []ScheduleItemResponse   `json:"schedule"`
	Crew     []CrewAssignmentResponse `json:"crew"`
}

// ToProjectResponse converts a domain project
func ToProjectResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Budget:      p.Budget,
		Spent:       p.Spent,
		Currency:    p.Currency,
		OwnerEmail:  p.OwnerEmail,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// AddScheduleItemRequest adds a schedule entry
type AddScheduleItemRequest struct {
	Title    string    `json:"title" binding:"required,min=1,max=200"`
	Location string    `json:"location" binding:"max=200"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
}

// ScheduleItemResponse represents a schedule entry
type ScheduleItemResponse struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Location string    `json:"location,omitempty"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

func toScheduleItemResponse(s *project.ScheduleItem) ScheduleItemResponse {
	return ScheduleItemResponse{
		ID:       s.ID,
		Title:    s.Title,
		Location: s.Location,
		StartsAt: s.StartsAt,
		EndsAt:   s.EndsAt,
	}
}

// AddCrewRequest assigns a crew member
type AddCrewRequest struct {
	MemberName string `json:"member_name" binding:"required,min=1,max=200"`
	Email      string `json:"email" binding:"omitempty,email,max=200"`
	Role       string `json:"role" binding:"required,min=1,max=100"`
}

// UpdateCrewStatusRequest changes an assignment's status
type UpdateCrewStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed declined"`
}

// CrewAssignmentResponse represents a crew assignment
type CrewAssignmentResponse struct {
	ID         uuid.UUID `json:"id"`
	MemberName string    `json:"member_name"`
	Email      string    `json:"email,omitempty"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toCrewAssignmentResponse(a *project.CrewAssignment) CrewAssignmentResponse {
	return CrewAssignmentResponse{
		ID:         a.ID,
		MemberName: a.MemberName,
		Email:      a.Email,
		Role:       a.Role,
		Status:     string(a.Status),
		UpdatedAt:  a.UpdatedAt,
	}
}

// RecordSpendRequest adds to a project's spend
type RecordSpendRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
