// Package asset tracks production gear and vehicles and the insurance
// policies that cover them.
package asset

import (
	"strings"
	"time"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status of an asset
type Status string

const (
	StatusActive  Status = "active"
	StatusRetired Status = "retired"
)

// Asset is a tracked piece of equipment
type Asset struct {
	shared.TenantAggregateRoot
	Tag              string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_assets_tenant_tag,priority:2"`
	Name             string          `gorm:"type:varchar(200);not null"`
	Category         string          `gorm:"type:varchar(100);not null;index"`
	SerialNumber     string          `gorm:"type:varchar(100)"`
	ReplacementValue decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status           Status          `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Asset) TableName() string {
	return "assets"
}

// NewAsset creates an active asset
func NewAsset(tenantID uuid.UUID, tag, name, category string, replacementValue decimal.Decimal) (*Asset, error) {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	if tag == "" {
		return nil, shared.NewDomainError("INVALID_TAG", "Asset tag cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Asset name cannot be empty")
	}
	if replacementValue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VALUE", "Replacement value cannot be negative")
	}
	if category == "" {
		category = "general"
	}

	return &Asset{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Tag:                 tag,
		Name:                name,
		Category:            strings.ToLower(category),
		ReplacementValue:    replacementValue,
		Status:              StatusActive,
	}, nil
}

// Retire takes the asset out of service
func (a *Asset) Retire() error {
	if a.Status == StatusRetired {
		return shared.NewDomainError("INVALID_STATE", "Asset is already retired")
	}
	a.Status = StatusRetired
	a.MarkModified(time.Now())
	return nil
}
