// Package project models event and venue productions: their schedule, crew
// and budget-to-date.
package project

import (
	"strings"
	"time"

	"github.com/ghxstship/backend/internal/domain/risk"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a project
type Status string

const (
	StatusPlanning  Status = "planning"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPlanning, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Project is the aggregate root for a production
type Project struct {
	shared.TenantAggregateRoot
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_projects_tenant_code,priority:2"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Status      Status          `gorm:"type:varchar(20);not null;default:'planning';index"`
	StartDate   *time.Time      `gorm:"index"`
	EndDate     *time.Time      `gorm:"index"`
	Budget      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Spent       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'USD'"`
	OwnerEmail  string          `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// NewProject creates a project in planning status
func NewProject(tenantID uuid.UUID, code, name string, budget decimal.Decimal) (*Project, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if budget.IsNegative() {
		return nil, shared.NewDomainError("INVALID_BUDGET", "Budget cannot be negative")
	}

	return &Project{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Status:              StatusPlanning,
		Budget:              budget,
		Spent:               decimal.Zero,
		Currency:            "USD",
	}, nil
}

// Update changes the descriptive fields
func (p *Project) Update(name, description, ownerEmail string) error {
	if err := validateName(name); err != nil {
		return err
	}
	p.Name = name
	p.Description = description
	p.OwnerEmail = ownerEmail
	p.touch()
	return nil
}

// SetDates sets the production window. Either bound may be nil.
func (p *Project) SetDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return shared.NewDomainError("INVALID_DATES", "End date cannot be before start date")
	}
	p.StartDate = start
	p.EndDate = end
	p.touch()
	return nil
}

// SetBudget replaces the total budget
func (p *Project) SetBudget(budget decimal.Decimal) error {
	if budget.IsNegative() {
		return shared.NewDomainError("INVALID_BUDGET", "Budget cannot be negative")
	}
	p.Budget = budget
	p.touch()
	return nil
}

// RecordSpend adds amount to the spend-to-date
func (p *Project) RecordSpend(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Spend amount must be positive")
	}
	if p.Status == StatusCancelled || p.Status == StatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot record spend on a closed project")
	}
	p.Spent = p.Spent.Add(amount)
	p.touch()
	return nil
}

// ChangeStatus moves the project through its lifecycle
func (p *Project) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown project status")
	}
	if p.Status == status {
		return nil
	}
	if p.Status == StatusCancelled || p.Status == StatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Project is already closed")
	}
	p.Status = status
	p.touch()
	return nil
}

// RiskBudget returns the budget attribute for risk scoring
func (p *Project) RiskBudget() risk.Budget {
	return risk.Budget{Total: p.Budget, Spent: p.Spent}
}

func (p *Project) touch() {
	p.MarkModified(time.Now())
}

func validateCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Project code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Project code cannot exceed 50 characters")
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Project name cannot exceed 200 characters")
	}
	return nil
}
