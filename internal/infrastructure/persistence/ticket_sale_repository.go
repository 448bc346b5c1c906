package persistence

import (
	"context"

	"github.com/ghxstship/backend/internal/domain/demand"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const ticketSaleBatchSize = 500

// GormTicketSaleRepository implements demand.TicketSaleRepository using GORM
type GormTicketSaleRepository struct {
	db *gorm.DB
}

// NewGormTicketSaleRepository creates a new GormTicketSaleRepository
func NewGormTicketSaleRepository(db *gorm.DB) *GormTicketSaleRepository {
	return &GormTicketSaleRepository{db: db}
}

// Save records a sale
func (r *GormTicketSaleRepository) Save(ctx context.Context, sale *demand.TicketSale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

// SaveBatch inserts sales in chunks inside one transaction
func (r *GormTicketSaleRepository) SaveBatch(ctx context.Context, sales []*demand.TicketSale) error {
	if len(sales) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(sales, ticketSaleBatchSize).Error
	})
}

// FindAllForTenant lists sales, optionally for one event, newest first by default
func (r *GormTicketSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, eventID *uuid.UUID, filter shared.Filter) ([]demand.TicketSale, error) {
	if filter.OrderBy == "" {
		filter.OrderBy, filter.OrderDir = "sold_at", "desc"
	}
	var sales []demand.TicketSale
	if err := r.scoped(ctx, tenantID, eventID).
		Scopes(paginate(filter, TicketSaleSortFields, "sold_at")).
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// CountForTenant counts sales, optionally for one event
func (r *GormTicketSaleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, eventID *uuid.UUID) (int64, error) {
	var count int64
	err := r.scoped(ctx, tenantID, eventID).Count(&count).Error
	return count, err
}

// FindInRange returns sales with From <= sold_at < To in chronological order
func (r *GormTicketSaleRepository) FindInRange(ctx context.Context, tenantID uuid.UUID, q demand.SalesQuery) ([]demand.TicketSale, error) {
	var sales []demand.TicketSale
	if err := r.scoped(ctx, tenantID, q.EventID).
		Where("sold_at >= ? AND sold_at < ?", q.From, q.To).
		Order("sold_at ASC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *GormTicketSaleRepository) scoped(ctx context.Context, tenantID uuid.UUID, eventID *uuid.UUID) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&demand.TicketSale{}).Scopes(tenantScope(tenantID))
	if eventID != nil {
		query = query.Where("event_id = ?", *eventID)
	}
	return query
}

var _ demand.TicketSaleRepository = (*GormTicketSaleRepository)(nil)
