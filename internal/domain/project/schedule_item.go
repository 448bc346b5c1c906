package project

import (
	"strings"
	"time"

	"github.com/ghxstship/backend/internal/domain/risk"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ScheduleItem is one block on a project's run of show. The window is
// half-open: [StartsAt, EndsAt).
type ScheduleItem struct {
	shared.BaseEntity
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(200);not null"`
	Location  string    `gorm:"type:varchar(200)"`
	StartsAt  time.Time `gorm:"not null"`
	EndsAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ScheduleItem) TableName() string {
	return "schedule_items"
}

// NewScheduleItem creates a schedule item for a project
func NewScheduleItem(tenantID, projectID uuid.UUID, title, location string, startsAt, endsAt time.Time) (*ScheduleItem, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Schedule item title cannot be empty")
	}
	if !endsAt.After(startsAt) {
		return nil, shared.NewDomainError("INVALID_WINDOW", "Schedule item must end after it starts")
	}
	return &ScheduleItem{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		ProjectID:  projectID,
		Title:      title,
		Location:   location,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
	}, nil
}

// Window returns the item as a risk schedule window
func (s ScheduleItem) Window() risk.Window {
	return risk.Window{Label: s.Title, Start: s.StartsAt, End: s.EndsAt}
}

// Windows converts a schedule to risk windows
func Windows(items []ScheduleItem) []risk.Window {
	out := make([]risk.Window, len(items))
	for i, item := range items {
		out[i] = item.Window()
	}
	return out
}
