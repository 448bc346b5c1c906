package payment

import (
	"context"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentRepository persists payments
type PaymentRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error)
	FindByExternalRef(ctx context.Context, ref string) (*Payment, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Payment, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, payment *Payment) error
	// CreateCheck allocates the tenant's next check number and inserts the
	// payment in one transaction. Concurrent callers never share a number.
	CreateCheck(ctx context.Context, payment *Payment) error
}
