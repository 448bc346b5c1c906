package persistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"pgx unique", &pgconn.PgError{Code: "23505"}, true},
		{"pgx wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"pgx other", &pgconn.PgError{Code: "23503"}, false},
		{"lib/pq unique", &pq.Error{Code: "23505"}, true},
		{"sqlite message", errors.New("UNIQUE constraint failed: asset_coverages.asset_id"), true},
		{"unrelated", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err))
		})
	}
}

func TestTranslateError(t *testing.T) {
	conflict := shared.NewDomainError("ALREADY_EXISTS", "taken")

	assert.NoError(t, translateError(nil, conflict))
	assert.Equal(t, shared.ErrNotFound, translateError(gorm.ErrRecordNotFound, conflict))
	assert.Equal(t, conflict, translateError(gorm.ErrDuplicatedKey, conflict))
	assert.Equal(t, shared.ErrAlreadyExists, translateError(gorm.ErrDuplicatedKey, nil))

	other := errors.New("boom")
	assert.Equal(t, other, translateError(other, conflict))
}
