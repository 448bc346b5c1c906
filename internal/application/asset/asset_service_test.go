package asset

import (
	"context"
	"testing"
	"time"

	"github.com/ghxstship/backend/internal/domain/asset"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/ghxstship/backend/internal/infrastructure/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc       *AssetService
	assets    *MockAssetRepository
	policies  *MockPolicyRepository
	coverages *MockCoverageRepository
	storage   *MockCertificateStorage
}

func newFixture() *fixture {
	f := &fixture{
		assets:    new(MockAssetRepository),
		policies:  new(MockPolicyRepository),
		coverages: new(MockCoverageRepository),
		storage:   new(MockCertificateStorage),
	}
	f.svc = NewAssetService(f.assets, f.policies, f.coverages, f.storage, 10*time.Minute)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func newTestAsset(t *testing.T, tenantID uuid.UUID, value int64) *asset.Asset {
	t.Helper()
	a, err := asset.NewAsset(tenantID, "lx-001", "Moving head", "lighting", decimal.NewFromInt(value))
	require.NoError(t, err)
	return a
}

func newTestPolicy(t *testing.T, tenantID uuid.UUID, from, to time.Time) *asset.Policy {
	t.Helper()
	p, err := asset.NewPolicy(tenantID, "POL-1", "Acme Mutual", decimal.NewFromInt(50000), decimal.NewFromInt(500), from, to)
	require.NoError(t, err)
	return p
}

func TestAssetService_CreateAsset(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tenantID, userID := uuid.New(), uuid.New()

	f.assets.On("Save", ctx, mock.AnythingOfType("*asset.Asset")).Return(nil)

	resp, err := f.svc.CreateAsset(ctx, tenantID, userID, CreateAssetRequest{
		Tag:              "lx-001",
		Name:             "Moving head",
		Category:         "Lighting",
		SerialNumber:     " SN-9 ",
		ReplacementValue: decimal.NewFromInt(4200),
	})
	require.NoError(t, err)
	assert.Equal(t, "LX-001", resp.Tag)
	assert.Equal(t, "lighting", resp.Category)
	assert.Equal(t, "SN-9", resp.SerialNumber)
	assert.Equal(t, "active", resp.Status)
	f.assets.AssertExpectations(t)
}

func TestAssetService_CreateAsset_DuplicateTag(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	dup := shared.NewDomainError("ALREADY_EXISTS", "Asset tag already exists")

	f.assets.On("Save", ctx, mock.Anything).Return(dup)

	_, err := f.svc.CreateAsset(ctx, uuid.New(), uuid.New(), CreateAssetRequest{Tag: "A", Name: "B"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestAssetService_AttachCoverage(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	t.Run("defaults insured value to replacement value", func(t *testing.T) {
		f := newFixture()
		a := newTestAsset(t, tenantID, 4200)
		p := newTestPolicy(t, tenantID, fixedNow.AddDate(0, -1, 0), fixedNow.AddDate(1, 0, 0))
		f.assets.On("FindByIDForTenant", ctx, tenantID, a.ID).Return(a, nil)
		f.policies.On("FindByIDForTenant", ctx, tenantID, p.ID).Return(p, nil)
		f.coverages.On("Create", ctx, mock.AnythingOfType("*asset.Coverage")).Return(nil)

		resp, err := f.svc.AttachCoverage(ctx, tenantID, a.ID, AttachCoverageRequest{PolicyID: p.ID})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(4200).Equal(resp.InsuredValue))
		assert.Equal(t, fixedNow, resp.CoveredFrom)
		f.coverages.AssertExpectations(t)
	})

	t.Run("expired policy is rejected without writing", func(t *testing.T) {
		f := newFixture()
		a := newTestAsset(t, tenantID, 4200)
		p := newTestPolicy(t, tenantID, fixedNow.AddDate(-2, 0, 0), fixedNow.AddDate(-1, 0, 0))
		f.assets.On("FindByIDForTenant", ctx, tenantID, a.ID).Return(a, nil)
		f.policies.On("FindByIDForTenant", ctx, tenantID, p.ID).Return(p, nil)

		_, err := f.svc.AttachCoverage(ctx, tenantID, a.ID, AttachCoverageRequest{PolicyID: p.ID})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "POLICY_NOT_IN_FORCE", domainErr.Code)
		f.coverages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate pair surfaces the store conflict", func(t *testing.T) {
		f := newFixture()
		a := newTestAsset(t, tenantID, 100)
		p := newTestPolicy(t, tenantID, fixedNow.AddDate(0, -1, 0), fixedNow.AddDate(1, 0, 0))
		f.assets.On("FindByIDForTenant", ctx, tenantID, a.ID).Return(a, nil)
		f.policies.On("FindByIDForTenant", ctx, tenantID, p.ID).Return(p, nil)
		f.coverages.On("Create", ctx, mock.Anything).Return(asset.ErrDuplicateCoverage)

		_, err := f.svc.AttachCoverage(ctx, tenantID, a.ID, AttachCoverageRequest{PolicyID: p.ID})
		assert.ErrorIs(t, err, asset.ErrDuplicateCoverage)
	})

	t.Run("insured value above the limit", func(t *testing.T) {
		f := newFixture()
		a := newTestAsset(t, tenantID, 100)
		p := newTestPolicy(t, tenantID, fixedNow.AddDate(0, -1, 0), fixedNow.AddDate(1, 0, 0))
		f.assets.On("FindByIDForTenant", ctx, tenantID, a.ID).Return(a, nil)
		f.policies.On("FindByIDForTenant", ctx, tenantID, p.ID).Return(p, nil)

		_, err := f.svc.AttachCoverage(ctx, tenantID, a.ID, AttachCoverageRequest{
			PolicyID:     p.ID,
			InsuredValue: decimal.NewFromInt(60000),
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "COVERAGE_LIMIT_EXCEEDED", domainErr.Code)
	})
}

func TestAssetService_ListCoverages_UnknownAsset(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tenantID, assetID := uuid.New(), uuid.New()
	f.assets.On("FindByIDForTenant", ctx, tenantID, assetID).Return(nil, shared.ErrNotFound)

	_, err := f.svc.ListCoverages(ctx, tenantID, assetID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.coverages.AssertNotCalled(t, "FindByAsset", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssetService_RetireAsset(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tenantID := uuid.New()
	a := newTestAsset(t, tenantID, 100)
	f.assets.On("FindByIDForTenant", ctx, tenantID, a.ID).Return(a, nil)
	f.assets.On("Save", ctx, a).Return(nil)

	resp, err := f.svc.RetireAsset(ctx, tenantID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "retired", resp.Status)

	_, err = f.svc.RetireAsset(ctx, tenantID, a.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestAssetService_Certificates(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	expires := fixedNow.Add(10 * time.Minute)

	t.Run("upload url uses the policy key", func(t *testing.T) {
		f := newFixture()
		p := newTestPolicy(t, tenantID, fixedNow.AddDate(0, -1, 0), fixedNow.AddDate(1, 0, 0))
		key := p.CertificatePrefix() + "coi.pdf"
		f.policies.On("FindByIDForTenant", ctx, tenantID, p.ID).Return(p, nil)
		f.storage.On("GenerateUploadURL", ctx, key, "application/pdf", 10*time.Minute).
			Return("https://bucket/put", expires, nil)

		resp, err := f.svc.CertificateUploadURL(ctx, tenantID, p.ID, CertificateUploadRequest{Filename: "coi.pdf"})
		require.NoError(t, err)
		assert.Equal(t, key, resp.Key)
		assert.Equal(t, "PUT", resp.Method)
		assert.Equal(t, expires, resp.ExpiresAt)
	})

	t.Run("confirm requires the object to exist", func(t *testing.T) {
		f := newFixture()
		p := newTestPolicy(t, tenantID, fixedNow.AddDate(0, -1, 0), fixedNow.AddDate(1, 0, 0))
		key := p.CertificatePrefix() + "coi.pdf"
		f.policies.On("FindByIDForTenant", ctx, tenantID, p.ID).Return(p, nil)
		f.storage.On("ObjectExists", ctx, key).Return(false, nil).Once()

		_, err := f.svc.ConfirmCertificate(ctx, tenantID, p.ID, ConfirmCertificateRequest{Key: key})
		assert.ErrorIs(t, err, ErrCertificateNotUploaded)

		f.storage.On("ObjectExists", ctx, key).Return(true, nil).Once()
		f.policies.On("Save", ctx, p).Return(nil)

		resp, err := f.svc.ConfirmCertificate(ctx, tenantID, p.ID, ConfirmCertificateRequest{Key: key})
		require.NoError(t, err)
		assert.True(t, resp.HasCertificate)
		assert.True(t, resp.InForce)
	})

	t.Run("confirm rejects a foreign key", func(t *testing.T) {
		f := newFixture()
		p := newTestPolicy(t, tenantID, fixedNow.AddDate(0, -1, 0), fixedNow.AddDate(1, 0, 0))
		f.policies.On("FindByIDForTenant", ctx, tenantID, p.ID).Return(p, nil)

		_, err := f.svc.ConfirmCertificate(ctx, tenantID, p.ID, ConfirmCertificateRequest{Key: "tenants/other/coi.pdf"})
		assert.ErrorIs(t, err, ErrCertificateKeyMismatch)
		f.storage.AssertNotCalled(t, "ObjectExists", mock.Anything, mock.Anything)
	})

	t.Run("download without certificate", func(t *testing.T) {
		f := newFixture()
		p := newTestPolicy(t, tenantID, fixedNow.AddDate(0, -1, 0), fixedNow.AddDate(1, 0, 0))
		f.policies.On("FindByIDForTenant", ctx, tenantID, p.ID).Return(p, nil)

		_, err := f.svc.CertificateDownloadURL(ctx, tenantID, p.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("unconfigured storage", func(t *testing.T) {
		f := newFixture()
		f.svc.storage = storage.Unconfigured{}
		p := newTestPolicy(t, tenantID, fixedNow.AddDate(0, -1, 0), fixedNow.AddDate(1, 0, 0))
		f.policies.On("FindByIDForTenant", ctx, tenantID, p.ID).Return(p, nil)

		_, err := f.svc.CertificateUploadURL(ctx, tenantID, p.ID, CertificateUploadRequest{Filename: "coi.pdf"})
		assert.ErrorIs(t, err, storage.ErrNotConfigured)
	})
}
