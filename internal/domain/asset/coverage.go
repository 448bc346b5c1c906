package asset

import (
	"time"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Coverage links an asset to a policy. An asset/policy pair is unique; the
// store enforces it so concurrent attaches cannot both succeed.
type Coverage struct {
	shared.BaseEntity
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	AssetID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_asset_coverages_pair"`
	PolicyID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_asset_coverages_pair;index"`
	InsuredValue decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CoveredFrom  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Coverage) TableName() string {
	return "asset_coverages"
}

// ErrDuplicateCoverage is returned when an asset is already on a policy
var ErrDuplicateCoverage = shared.NewDomainError("ALREADY_EXISTS", "Asset is already covered by this policy")

// NewCoverage attaches asset to policy as of now. A zero insuredValue
// defaults to the asset's replacement value.
func NewCoverage(a *Asset, p *Policy, insuredValue decimal.Decimal, now time.Time) (*Coverage, error) {
	if a.TenantID != p.TenantID {
		return nil, shared.ErrNotFound
	}
	if a.Status != StatusActive {
		return nil, shared.NewDomainError("ASSET_RETIRED", "Retired assets cannot be covered")
	}
	if !p.InForce(now) {
		return nil, shared.NewDomainError("POLICY_NOT_IN_FORCE", "Policy is not in force")
	}
	if insuredValue.IsZero() {
		insuredValue = a.ReplacementValue
	}
	if insuredValue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VALUE", "Insured value cannot be negative")
	}
	if insuredValue.GreaterThan(p.CoverageLimit) {
		return nil, shared.NewDomainError("COVERAGE_LIMIT_EXCEEDED", "Insured value exceeds the policy coverage limit")
	}

	return &Coverage{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     a.TenantID,
		AssetID:      a.ID,
		PolicyID:     p.ID,
		InsuredValue: insuredValue,
		CoveredFrom:  now,
	}, nil
}
