// Package asset manages assets, insurance policies, and the coverage links
// between them, including certificate-of-insurance documents.
package asset

import (
	"context"
	"strings"
	"time"

	"github.com/ghxstship/backend/internal/domain/asset"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const defaultCertificateType = "application/pdf"

var (
	ErrCertificateNotUploaded = shared.NewDomainError("CERTIFICATE_NOT_UPLOADED", "Certificate has not been uploaded")
	ErrCertificateKeyMismatch = shared.NewDomainError("INVALID_CERTIFICATE", "Certificate key does not belong to this policy")
	ErrNoCertificate          = shared.NewDomainError("NOT_FOUND", "Policy has no certificate on file")
)

// CertificateStorage issues presigned URLs for certificate objects
type CertificateStorage interface {
	GenerateUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
	ObjectExists(ctx context.Context, key string) (bool, error)
}

// AssetService handles asset and insurance operations
type AssetService struct {
	assets    asset.AssetRepository
	policies  asset.PolicyRepository
	coverages asset.CoverageRepository
	storage   CertificateStorage
	urlExpiry time.Duration
	now       func() time.Time
}

// NewAssetService creates a new AssetService. urlExpiry <= 0 leaves the
// storage default in place.
func NewAssetService(
	assets asset.AssetRepository,
	policies asset.PolicyRepository,
	coverages asset.CoverageRepository,
	storage CertificateStorage,
	urlExpiry time.Duration,
) *AssetService {
	return &AssetService{
		assets:    assets,
		policies:  policies,
		coverages: coverages,
		storage:   storage,
		urlExpiry: urlExpiry,
		now:       time.Now,
	}
}

// CreateAsset registers an asset
func (s *AssetService) CreateAsset(ctx context.Context, tenantID, userID uuid.UUID, req CreateAssetRequest) (*AssetResponse, error) {
	a, err := asset.NewAsset(tenantID, req.Tag, req.Name, req.Category, req.ReplacementValue)
	if err != nil {
		return nil, err
	}
	a.SerialNumber = strings.TrimSpace(req.SerialNumber)
	a.SetCreatedBy(userID)
	if err := s.assets.Save(ctx, a); err != nil {
		return nil, err
	}
	resp := ToAssetResponse(a)
	return &resp, nil
}

// GetAsset returns one asset
func (s *AssetService) GetAsset(ctx context.Context, tenantID, id uuid.UUID) (*AssetResponse, error) {
	a, err := s.assets.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToAssetResponse(a)
	return &resp, nil
}

// ListAssets returns a page of assets
func (s *AssetService) ListAssets(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]AssetResponse, int64, error) {
	domainFilter := toDomainFilter(filter)
	if filter.Status != "" {
		domainFilter = domainFilter.Where("status", filter.Status)
	}
	if filter.Category != "" {
		domainFilter = domainFilter.Where("category", strings.ToLower(filter.Category))
	}

	assets, err := s.assets.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.assets.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]AssetResponse, len(assets))
	for i := range assets {
		out[i] = ToAssetResponse(&assets[i])
	}
	return out, total, nil
}

// RetireAsset takes an asset out of service
func (s *AssetService) RetireAsset(ctx context.Context, tenantID, id uuid.UUID) (*AssetResponse, error) {
	a, err := s.assets.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := a.Retire(); err != nil {
		return nil, err
	}
	if err := s.assets.Save(ctx, a); err != nil {
		return nil, err
	}
	resp := ToAssetResponse(a)
	return &resp, nil
}

// CreatePolicy registers an insurance policy
func (s *AssetService) CreatePolicy(ctx context.Context, tenantID, userID uuid.UUID, req CreatePolicyRequest) (*PolicyResponse, error) {
	p, err := asset.NewPolicy(tenantID, req.PolicyNumber, req.Carrier, req.CoverageLimit, req.Deductible, req.EffectiveDate, req.ExpiryDate)
	if err != nil {
		return nil, err
	}
	p.SetCreatedBy(userID)
	if err := s.policies.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToPolicyResponse(p, s.now())
	return &resp, nil
}

// GetPolicy returns one policy
func (s *AssetService) GetPolicy(ctx context.Context, tenantID, id uuid.UUID) (*PolicyResponse, error) {
	p, err := s.policies.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPolicyResponse(p, s.now())
	return &resp, nil
}

// ListPolicies returns a page of policies
func (s *AssetService) ListPolicies(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]PolicyResponse, int64, error) {
	domainFilter := toDomainFilter(filter)
	policies, err := s.policies.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.policies.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	out := make([]PolicyResponse, len(policies))
	for i := range policies {
		out[i] = ToPolicyResponse(&policies[i], now)
	}
	return out, total, nil
}

// AttachCoverage covers an asset under a policy. A second attach of the same
// pair fails with ErrAlreadyExists from the unique constraint.
func (s *AssetService) AttachCoverage(ctx context.Context, tenantID, assetID uuid.UUID, req AttachCoverageRequest) (*CoverageResponse, error) {
	a, err := s.assets.FindByIDForTenant(ctx, tenantID, assetID)
	if err != nil {
		return nil, err
	}
	p, err := s.policies.FindByIDForTenant(ctx, tenantID, req.PolicyID)
	if err != nil {
		return nil, err
	}
	c, err := asset.NewCoverage(a, p, req.InsuredValue, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.coverages.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCoverageResponse(c)
	return &resp, nil
}

// DetachCoverage removes an asset from a policy
func (s *AssetService) DetachCoverage(ctx context.Context, tenantID, assetID, policyID uuid.UUID) error {
	return s.coverages.Delete(ctx, tenantID, assetID, policyID)
}

// ListCoverages lists the policies covering an asset
func (s *AssetService) ListCoverages(ctx context.Context, tenantID, assetID uuid.UUID) ([]CoverageResponse, error) {
	if _, err := s.assets.FindByIDForTenant(ctx, tenantID, assetID); err != nil {
		return nil, err
	}
	coverages, err := s.coverages.FindByAsset(ctx, tenantID, assetID)
	if err != nil {
		return nil, err
	}
	out := make([]CoverageResponse, len(coverages))
	for i := range coverages {
		out[i] = toCoverageResponse(&coverages[i])
	}
	return out, nil
}

// CertificateUploadURL issues a presigned PUT URL for a policy certificate.
// The certificate is recorded on the policy by ConfirmCertificate once the
// upload has landed.
func (s *AssetService) CertificateUploadURL(ctx context.Context, tenantID, policyID uuid.UUID, req CertificateUploadRequest) (*PresignedURLResponse, error) {
	p, err := s.policies.FindByIDForTenant(ctx, tenantID, policyID)
	if err != nil {
		return nil, err
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = defaultCertificateType
	}
	key := p.CertificateObjectKey(req.Filename)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, s.urlExpiry)
	if err != nil {
		return nil, err
	}
	return &PresignedURLResponse{URL: url, Key: key, Method: "PUT", ExpiresAt: expiresAt}, nil
}

// ConfirmCertificate records an uploaded certificate on the policy
func (s *AssetService) ConfirmCertificate(ctx context.Context, tenantID, policyID uuid.UUID, req ConfirmCertificateRequest) (*PolicyResponse, error) {
	p, err := s.policies.FindByIDForTenant(ctx, tenantID, policyID)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(req.Key, p.CertificatePrefix()) || strings.Contains(req.Key, "..") {
		return nil, ErrCertificateKeyMismatch
	}
	exists, err := s.storage.ObjectExists(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCertificateNotUploaded
	}
	if err := p.AttachCertificate(req.Key); err != nil {
		return nil, err
	}
	if err := s.policies.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToPolicyResponse(p, s.now())
	return &resp, nil
}

// CertificateDownloadURL issues a presigned GET URL for the policy's
// certificate
func (s *AssetService) CertificateDownloadURL(ctx context.Context, tenantID, policyID uuid.UUID) (*PresignedURLResponse, error) {
	p, err := s.policies.FindByIDForTenant(ctx, tenantID, policyID)
	if err != nil {
		return nil, err
	}
	if p.CertificateKey == "" {
		return nil, ErrNoCertificate
	}
	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, p.CertificateKey, s.urlExpiry)
	if err != nil {
		return nil, err
	}
	return &PresignedURLResponse{URL: url, Key: p.CertificateKey, Method: "GET", ExpiresAt: expiresAt}, nil
}

func toDomainFilter(filter ListFilter) shared.Filter {
	f := shared.DefaultFilter()
	f.Search = filter.Search
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	return f
}
