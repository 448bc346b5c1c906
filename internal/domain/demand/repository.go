package demand

import (
	"context"
	"time"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SalesQuery scopes a history lookup. A nil EventID covers every event of
// the tenant.
type SalesQuery struct {
	EventID *uuid.UUID
	From    time.Time
	To      time.Time
}

// TicketSaleRepository persists ticket sales
type TicketSaleRepository interface {
	Save(ctx context.Context, sale *TicketSale) error
	// SaveBatch inserts all sales in one transaction
	SaveBatch(ctx context.Context, sales []*TicketSale) error
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, eventID *uuid.UUID, filter shared.Filter) ([]TicketSale, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, eventID *uuid.UUID) (int64, error)
	// FindInRange returns sales with From <= sold_at < To
	FindInRange(ctx context.Context, tenantID uuid.UUID, query SalesQuery) ([]TicketSale, error)
}
