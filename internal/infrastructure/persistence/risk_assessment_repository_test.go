package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/ghxstship/backend/internal/domain/risk"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormAssessmentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAssessmentRepository(db)
	ctx := context.Background()
	tenantID, projectID := uuid.New(), uuid.New()
	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	eval := risk.Evaluation{
		Findings: []risk.Finding{{
			Category:   risk.CategoryFinancial,
			Title:      "Budget overrun",
			Likelihood: 5,
			Impact:     4,
			Score:      8,
			Mitigation: "Freeze discretionary spend",
		}},
		OverallScore: 8,
		AlertRaised:  true,
		Level:        risk.LevelCritical,
	}

	for i := 0; i < 3; i++ {
		a, err := risk.NewAssessment(tenantID, projectID, eval, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, a))
	}

	list, err := repo.FindByProject(ctx, tenantID, projectID, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].AssessedAt.Equal(base.Add(2*time.Hour)))
	require.Len(t, list[0].Findings, 1)
	assert.Equal(t, "Budget overrun", list[0].Findings[0].Title)
	assert.Equal(t, risk.LevelCritical, list[0].Level)

	count, err := repo.CountByProject(ctx, tenantID, projectID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	latest, err := repo.FindLatest(ctx, tenantID, projectID)
	require.NoError(t, err)
	assert.Equal(t, list[0].ID, latest.ID)

	_, err = repo.FindLatest(ctx, tenantID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	paged, err := repo.FindByProject(ctx, tenantID, projectID, shared.Filter{Page: 2, PageSize: 2, OrderBy: "assessed_at", OrderDir: "asc"})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.True(t, paged[0].AssessedAt.Equal(base.Add(2*time.Hour)))
}
