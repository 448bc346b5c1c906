package payment

import (
	"time"

	"github.com/google/uuid"
)

// DefaultFirstCheckNumber is where a tenant's check numbering starts
const DefaultFirstCheckNumber int64 = 1001

// CheckSequence holds the next unissued check number for a tenant. It is only
// ever advanced with a single atomic increment.
type CheckSequence struct {
	TenantID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	NextNumber int64     `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CheckSequence) TableName() string {
	return "check_sequences"
}
