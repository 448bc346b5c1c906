package asset

import (
	"strings"
	"time"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Policy is an insurance policy that can cover many assets
type Policy struct {
	shared.TenantAggregateRoot
	PolicyNumber   string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_policies_tenant_number,priority:2"`
	Carrier        string          `gorm:"type:varchar(200);not null"`
	CoverageLimit  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Deductible     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	EffectiveDate  time.Time       `gorm:"not null"`
	ExpiryDate     time.Time       `gorm:"not null;index"`
	CertificateKey string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Policy) TableName() string {
	return "insurance_policies"
}

// NewPolicy creates a policy. The coverage period is [effective, expiry).
func NewPolicy(tenantID uuid.UUID, number, carrier string, limit, deductible decimal.Decimal, effective, expiry time.Time) (*Policy, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_POLICY_NUMBER", "Policy number cannot be empty")
	}
	if strings.TrimSpace(carrier) == "" {
		return nil, shared.NewDomainError("INVALID_CARRIER", "Carrier cannot be empty")
	}
	if !limit.IsPositive() {
		return nil, shared.NewDomainError("INVALID_LIMIT", "Coverage limit must be positive")
	}
	if deductible.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DEDUCTIBLE", "Deductible cannot be negative")
	}
	if !expiry.After(effective) {
		return nil, shared.NewDomainError("INVALID_DATES", "Expiry must be after the effective date")
	}

	return &Policy{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PolicyNumber:        number,
		Carrier:             carrier,
		CoverageLimit:       limit,
		Deductible:          deductible,
		EffectiveDate:       effective,
		ExpiryDate:          expiry,
	}, nil
}

// InForce reports whether the policy covers instant t
func (p *Policy) InForce(t time.Time) bool {
	return !t.Before(p.EffectiveDate) && t.Before(p.ExpiryDate)
}

// AttachCertificate records the storage key of the certificate of insurance
func (p *Policy) AttachCertificate(key string) error {
	if strings.TrimSpace(key) == "" {
		return shared.NewDomainError("INVALID_CERTIFICATE", "Certificate key cannot be empty")
	}
	p.CertificateKey = key
	p.MarkModified(time.Now())
	return nil
}

// CertificateObjectKey returns the storage key a certificate for this policy
// should be uploaded to
func (p *Policy) CertificateObjectKey(filename string) string {
	name := strings.ReplaceAll(strings.TrimSpace(filename), "/", "_")
	if name == "" {
		name = "certificate.pdf"
	}
	return p.CertificatePrefix() + name
}

// CertificatePrefix is the storage prefix every certificate of this policy
// lives under
func (p *Policy) CertificatePrefix() string {
	return "tenants/" + p.TenantID.String() + "/policies/" + p.ID.String() + "/"
}
