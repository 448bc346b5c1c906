package asset

import (
	"context"
	"time"

	"github.com/ghxstship/backend/internal/domain/asset"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAssetRepository is a mock implementation of asset.AssetRepository
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*asset.Asset, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]asset.Asset, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]asset.Asset), args.Error(1)
}

func (m *MockAssetRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssetRepository) Save(ctx context.Context, a *asset.Asset) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// MockPolicyRepository is a mock implementation of asset.PolicyRepository
type MockPolicyRepository struct {
	mock.Mock
}

func (m *MockPolicyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*asset.Policy, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Policy), args.Error(1)
}

func (m *MockPolicyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]asset.Policy, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]asset.Policy), args.Error(1)
}

func (m *MockPolicyRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPolicyRepository) Save(ctx context.Context, p *asset.Policy) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockCoverageRepository is a mock implementation of asset.CoverageRepository
type MockCoverageRepository struct {
	mock.Mock
}

func (m *MockCoverageRepository) Create(ctx context.Context, c *asset.Coverage) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCoverageRepository) FindByAsset(ctx context.Context, tenantID, assetID uuid.UUID) ([]asset.Coverage, error) {
	args := m.Called(ctx, tenantID, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]asset.Coverage), args.Error(1)
}

func (m *MockCoverageRepository) FindByPolicy(ctx context.Context, tenantID, policyID uuid.UUID) ([]asset.Coverage, error) {
	args := m.Called(ctx, tenantID, policyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]asset.Coverage), args.Error(1)
}

func (m *MockCoverageRepository) Delete(ctx context.Context, tenantID, assetID, policyID uuid.UUID) error {
	args := m.Called(ctx, tenantID, assetID, policyID)
	return args.Error(0)
}

// MockCertificateStorage is a mock implementation of CertificateStorage
type MockCertificateStorage struct {
	mock.Mock
}

func (m *MockCertificateStorage) GenerateUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockCertificateStorage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockCertificateStorage) ObjectExists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
