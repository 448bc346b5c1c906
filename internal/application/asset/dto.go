package asset

import (
	"time"

	"github.com/ghxstship/backend/internal/domain/asset"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAssetRequest registers a physical asset
type CreateAssetRequest struct {
	Tag              string          `json:"tag" binding:"required,min=1,max=50"`
	Name             string          `json:"name" binding:"required,min=1,max=200"`
	Category         string          `json:"category" binding:"max=100"`
	SerialNumber     string          `json:"serial_number" binding:"max=100"`
	ReplacementValue decimal.Decimal `json:"replacement_value"`
}

// AssetResponse represents an asset
type AssetResponse struct {
	ID               uuid.UUID       `json:"id"`
	Tag              string          `json:"tag"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	SerialNumber     string          `json:"serial_number,omitempty"`
	ReplacementValue decimal.Decimal `json:"replacement_value"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	Version          int             `json:"version"`
}

// ToAssetResponse converts a domain asset
func ToAssetResponse(a *asset.Asset) AssetResponse {
	return AssetResponse{
		ID:               a.ID,
		Tag:              a.Tag,
		Name:             a.Name,
		Category:         a.Category,
		SerialNumber:     a.SerialNumber,
		ReplacementValue: a.ReplacementValue,
		Status:           string(a.Status),
		CreatedAt:        a.CreatedAt,
		Version:          a.Version,
	}
}

// CreatePolicyRequest registers an insurance policy
type CreatePolicyRequest struct {
	PolicyNumber  string          `json:"policy_number" binding:"required,min=1,max=100"`
	Carrier       string          `json:"carrier" binding:"required,min=1,max=200"`
	CoverageLimit decimal.Decimal `json:"coverage_limit"`
	Deductible    decimal.Decimal `json:"deductible"`
	EffectiveDate time.Time       `json:"effective_date" binding:"required"`
	ExpiryDate    time.Time       `json:"expiry_date" binding:"required"`
}

// PolicyResponse represents an insurance policy
type PolicyResponse struct {
	ID             uuid.UUID       `json:"id"`
	PolicyNumber   string          `json:"policy_number"`
	Carrier        string          `json:"carrier"`
	CoverageLimit  decimal.Decimal `json:"coverage_limit"`
	Deductible     decimal.Decimal `json:"deductible"`
	EffectiveDate  time.Time       `json:"effective_date"`
	ExpiryDate     time.Time       `json:"expiry_date"`
	HasCertificate bool            `json:"has_certificate"`
	InForce        bool            `json:"in_force"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToPolicyResponse converts a domain policy as of now
func ToPolicyResponse(p *asset.Policy, now time.Time) PolicyResponse {
	return PolicyResponse{
		ID:             p.ID,
		PolicyNumber:   p.PolicyNumber,
		Carrier:        p.Carrier,
		CoverageLimit:  p.CoverageLimit,
		Deductible:     p.Deductible,
		EffectiveDate:  p.EffectiveDate,
		ExpiryDate:     p.ExpiryDate,
		HasCertificate: p.CertificateKey != "",
		InForce:        p.InForce(now),
		CreatedAt:      p.CreatedAt,
	}
}

// AttachCoverageRequest covers an asset under a policy. A zero insured value
// defaults to the asset's replacement value.
type AttachCoverageRequest struct {
	PolicyID     uuid.UUID       `json:"policy_id" binding:"required"`
	InsuredValue decimal.Decimal `json:"insured_value"`
}

// CoverageResponse represents an asset/policy link
type CoverageResponse struct {
	ID           uuid.UUID       `json:"id"`
	AssetID      uuid.UUID       `json:"asset_id"`
	PolicyID     uuid.UUID       `json:"policy_id"`
	InsuredValue decimal.Decimal `json:"insured_value"`
	CoveredFrom  time.Time       `json:"covered_from"`
}

func toCoverageResponse(c *asset.Coverage) CoverageResponse {
	return CoverageResponse{
		ID:           c.ID,
		AssetID:      c.AssetID,
		PolicyID:     c.PolicyID,
		InsuredValue: c.InsuredValue,
		CoveredFrom:  c.CoveredFrom,
	}
}

// CertificateUploadRequest asks for a presigned upload URL
type CertificateUploadRequest struct {
	Filename    string `json:"filename" binding:"required,min=1,max=200"`
	ContentType string `json:"content_type" binding:"omitempty,oneof=application/pdf image/png image/jpeg"`
}

// ConfirmCertificateRequest records an uploaded certificate on the policy
type ConfirmCertificateRequest struct {
	Key string `json:"key" binding:"required,max=500"`
}

// PresignedURLResponse is a time-limited object URL
type PresignedURLResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ListFilter holds list parameters for assets and policies
type ListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active retired"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}
