package storage

import (
	"context"
	"time"

	"github.com/ghxstship/backend/internal/domain/shared"
)

// ErrNotConfigured is returned by Unconfigured for every operation
var ErrNotConfigured = shared.NewDomainError("STORAGE_NOT_CONFIGURED", "Certificate storage is not configured")

// Unconfigured stands in for object storage when no bucket is set, so
// certificate endpoints fail with a clear error instead of a nil client.
type Unconfigured struct{}

func (Unconfigured) GenerateUploadURL(context.Context, string, string, time.Duration) (string, time.Time, error) {
	return "", time.Time{}, ErrNotConfigured
}

func (Unconfigured) GenerateDownloadURL(context.Context, string, time.Duration) (string, time.Time, error) {
	return "", time.Time{}, ErrNotConfigured
}

func (Unconfigured) ObjectExists(context.Context, string) (bool, error) {
	return false, ErrNotConfigured
}
