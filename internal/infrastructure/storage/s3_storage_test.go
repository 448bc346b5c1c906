package storage

import (
	"context"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/ghxstship/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func localConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Bucket:          "certs",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		UsePathStyle:    true,
		PresignExpiry:   15 * time.Minute,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.StorageConfig
		wantErr string
	}{
		{name: "nil config", cfg: nil, wantErr: "configuration is required"},
		{name: "missing bucket", cfg: &config.StorageConfig{}, wantErr: "bucket is required"},
		{
			name:    "key id without secret",
			cfg:     &config.StorageConfig{Bucket: "b", AccessKeyID: "id"},
			wantErr: "must be set together",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewS3ObjectStorage(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("valid config", func(t *testing.T) {
		s, err := NewS3ObjectStorage(localConfig(), WithLogger(zap.NewNop()))
		require.NoError(t, err)
		assert.Equal(t, "certs", s.Bucket())
		assert.Equal(t, 15*time.Minute, s.presignExpiry)
	})

	t.Run("default expiry", func(t *testing.T) {
		cfg := localConfig()
		cfg.PresignExpiry = 0
		s, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, defaultPresignExpiry, s.presignExpiry)
	})

	t.Run("option overrides config", func(t *testing.T) {
		s, err := NewS3ObjectStorage(localConfig(), WithPresignExpiry(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, time.Hour, s.presignExpiry)
	})
}

func TestS3ObjectStorage_PresignedURLs(t *testing.T) {
	s, err := NewS3ObjectStorage(localConfig())
	require.NoError(t, err)
	ctx := context.Background()
	key := "tenants/t1/policies/p1/certificate.pdf"

	t.Run("upload", func(t *testing.T) {
		raw, expiresAt, err := s.GenerateUploadURL(ctx, key, "application/pdf", 0)
		require.NoError(t, err)

		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "localhost:9000", u.Host)
		assert.Equal(t, "/certs/"+key, u.Path)
		assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
		assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
		assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)
	})

	t.Run("download with explicit expiry", func(t *testing.T) {
		raw, _, err := s.GenerateDownloadURL(ctx, key, time.Hour)
		require.NoError(t, err)

		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "3600", u.Query().Get("X-Amz-Expires"))
	})

	t.Run("empty key", func(t *testing.T) {
		_, _, err := s.GenerateUploadURL(ctx, "", "application/pdf", 0)
		assert.Error(t, err)
		_, _, err = s.GenerateDownloadURL(ctx, "", 0)
		assert.Error(t, err)
		_, err = s.ObjectExists(ctx, "")
		assert.Error(t, err)
	})
}

func TestUnconfigured(t *testing.T) {
	var u Unconfigured
	_, _, err := u.GenerateUploadURL(context.Background(), "k", "", 0)
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = u.ObjectExists(context.Background(), "k")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

// Runs against a live S3-compatible endpoint, e.g. MinIO started with
// docker compose, when GHX_TEST_S3_ENDPOINT is set.
func TestIntegration_UploadAndExists(t *testing.T) {
	endpoint := os.Getenv("GHX_TEST_S3_ENDPOINT")
	if testing.Short() || endpoint == "" {
		t.Skip("set GHX_TEST_S3_ENDPOINT to run against an S3-compatible endpoint")
	}

	cfg := localConfig()
	cfg.Endpoint = endpoint
	cfg.Bucket = "ghx-integration"
	cfg.AccessKeyID = os.Getenv("GHX_TEST_S3_ACCESS_KEY")
	cfg.SecretAccessKey = os.Getenv("GHX_TEST_S3_SECRET_KEY")

	s, err := NewS3ObjectStorage(cfg)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.EnsureBucket(ctx))
	require.NoError(t, s.EnsureBucket(ctx))

	key := "integration/" + time.Now().Format("20060102150405") + ".txt"
	exists, err := s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Upload(ctx, key, []byte("certificate"), "text/plain"))
	exists, err = s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
}
