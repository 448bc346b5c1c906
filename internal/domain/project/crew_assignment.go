package project

import (
	"strings"

	"github.com/ghxstship/backend/internal/domain/risk"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AssignmentStatus is the booking state of a crew member on a project
type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentConfirmed AssignmentStatus = "confirmed"
	AssignmentDeclined  AssignmentStatus = "declined"
)

// IsValid reports whether s is a known assignment status
func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentPending, AssignmentConfirmed, AssignmentDeclined:
		return true
	}
	return false
}

// CrewAssignment books a crew member onto a project
type CrewAssignment struct {
	shared.BaseEntity
	TenantID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProjectID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	MemberName string           `gorm:"type:varchar(200);not null"`
	Email      string           `gorm:"type:varchar(200)"`
	Role       string           `gorm:"type:varchar(100);not null"`
	Status     AssignmentStatus `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (CrewAssignment) TableName() string {
	return "crew_assignments"
}

// NewCrewAssignment creates a pending assignment
func NewCrewAssignment(tenantID, projectID uuid.UUID, memberName, email, role string) (*CrewAssignment, error) {
	if strings.TrimSpace(memberName) == "" {
		return nil, shared.NewDomainError("INVALID_MEMBER", "Crew member name cannot be empty")
	}
	if strings.TrimSpace(role) == "" {
		return nil, shared.NewDomainError("INVALID_ROLE", "Crew role cannot be empty")
	}
	return &CrewAssignment{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		ProjectID:  projectID,
		MemberName: memberName,
		Email:      email,
		Role:       role,
		Status:     AssignmentPending,
	}, nil
}

// SetStatus updates the booking state
func (a *CrewAssignment) SetStatus(status AssignmentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown assignment status")
	}
	a.Status = status
	a.Touch()
	return nil
}

// Assignments converts crew to the risk rule input
func Assignments(crew []CrewAssignment) []risk.Assignment {
	out := make([]risk.Assignment, len(crew))
	for i, c := range crew {
		out[i] = risk.Assignment{Name: c.MemberName, Status: string(c.Status)}
	}
	return out
}
