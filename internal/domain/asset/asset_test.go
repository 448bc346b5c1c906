package asset

import (
	"errors"
	"testing"
	"time"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	effective = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expiry    = time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
)

func newTestPolicy(t *testing.T, tenantID uuid.UUID) *Policy {
	t.Helper()
	p, err := NewPolicy(tenantID, "POL-1", "Acme Mutual", decimal.NewFromInt(100000), decimal.NewFromInt(500), effective, expiry)
	require.NoError(t, err)
	return p
}

func newTestAsset(t *testing.T, tenantID uuid.UUID) *Asset {
	t.Helper()
	a, err := NewAsset(tenantID, "ld-0042", "Lighting desk", "Lighting", decimal.NewFromInt(25000))
	require.NoError(t, err)
	return a
}

func TestNewAsset(t *testing.T) {
	a := newTestAsset(t, uuid.New())
	assert.Equal(t, "LD-0042", a.Tag)
	assert.Equal(t, "lighting", a.Category)
	assert.Equal(t, StatusActive, a.Status)

	_, err := NewAsset(uuid.New(), "", "x", "", decimal.Zero)
	assert.Error(t, err)

	_, err = NewAsset(uuid.New(), "T", "x", "", decimal.NewFromInt(-1))
	assert.Error(t, err)

	require.NoError(t, a.Retire())
	assert.Error(t, a.Retire())
}

func TestNewPolicy(t *testing.T) {
	tenantID := uuid.New()
	p := newTestPolicy(t, tenantID)

	assert.True(t, p.InForce(effective))
	assert.True(t, p.InForce(expiry.Add(-time.Second)))
	assert.False(t, p.InForce(expiry))
	assert.False(t, p.InForce(effective.Add(-time.Second)))

	_, err := NewPolicy(tenantID, "P", "C", decimal.Zero, decimal.Zero, effective, expiry)
	assert.Error(t, err, "zero limit")

	_, err = NewPolicy(tenantID, "P", "C", decimal.NewFromInt(1), decimal.Zero, expiry, effective)
	assert.Error(t, err, "inverted dates")
}

func TestPolicy_Certificate(t *testing.T) {
	p := newTestPolicy(t, uuid.New())

	key := p.CertificateObjectKey("coi 2026.pdf")
	assert.Contains(t, key, p.ID.String())
	assert.Contains(t, key, p.TenantID.String())
	assert.NotContains(t, p.CertificateObjectKey("../../etc/passwd"), "/etc/")
	assert.Contains(t, p.CertificateObjectKey(""), "certificate.pdf")

	require.NoError(t, p.AttachCertificate(key))
	assert.Equal(t, key, p.CertificateKey)
	assert.Equal(t, 2, p.Version)
	assert.Error(t, p.AttachCertificate(""))
}

func TestNewCoverage(t *testing.T) {
	tenantID := uuid.New()
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("defaults insured value to replacement value", func(t *testing.T) {
		a := newTestAsset(t, tenantID)
		p := newTestPolicy(t, tenantID)

		c, err := NewCoverage(a, p, decimal.Zero, now)
		require.NoError(t, err)
		assert.Equal(t, a.ID, c.AssetID)
		assert.Equal(t, p.ID, c.PolicyID)
		assert.True(t, c.InsuredValue.Equal(decimal.NewFromInt(25000)))
	})

	t.Run("policy not in force", func(t *testing.T) {
		_, err := NewCoverage(newTestAsset(t, tenantID), newTestPolicy(t, tenantID), decimal.Zero, expiry)
		require.Error(t, err)
		var de *shared.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "POLICY_NOT_IN_FORCE", de.Code)
	})

	t.Run("exceeds limit", func(t *testing.T) {
		_, err := NewCoverage(newTestAsset(t, tenantID), newTestPolicy(t, tenantID), decimal.NewFromInt(200000), now)
		assert.Error(t, err)
	})

	t.Run("cross tenant", func(t *testing.T) {
		_, err := NewCoverage(newTestAsset(t, tenantID), newTestPolicy(t, uuid.New()), decimal.Zero, now)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("retired asset", func(t *testing.T) {
		a := newTestAsset(t, tenantID)
		require.NoError(t, a.Retire())
		_, err := NewCoverage(a, newTestPolicy(t, tenantID), decimal.Zero, now)
		assert.Error(t, err)
	})
}

func TestErrDuplicateCoverage_IsAlreadyExists(t *testing.T) {
	assert.ErrorIs(t, ErrDuplicateCoverage, shared.ErrAlreadyExists)
}
