package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/ghxstship/backend/internal/domain/payment"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateCheckNumber is returned if a check number collides with one
// already issued, which only happens when the sequence row was edited by hand.
var ErrDuplicateCheckNumber = shared.NewDomainError("ALREADY_EXISTS", "Check number already issued")

// GormPaymentRepository implements payment.PaymentRepository using GORM
type GormPaymentRepository struct {
	db         *gorm.DB
	firstCheck int64
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db, firstCheck: payment.DefaultFirstCheckNumber}
}

// FindByIDForTenant finds a payment within a tenant
func (r *GormPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*payment.Payment, error) {
	var p payment.Payment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&p).Error; err != nil {
		return nil, translateError(err, nil)
	}
	return &p, nil
}

// FindByExternalRef finds a payment by its provider reference. Webhooks
// arrive without tenant context, so this lookup is not tenant scoped.
func (r *GormPaymentRepository) FindByExternalRef(ctx context.Context, ref string) (*payment.Payment, error) {
	if ref == "" {
		return nil, shared.ErrNotFound
	}
	var p payment.Payment
	if err := r.db.WithContext(ctx).
		Where("external_ref = ?", ref).
		First(&p).Error; err != nil {
		return nil, translateError(err, nil)
	}
	return &p, nil
}

// FindAllForTenant lists a tenant's payments
func (r *GormPaymentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]payment.Payment, error) {
	var payments []payment.Payment
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&payment.Payment{}).Scopes(tenantScope(tenantID)), filter).
		Scopes(paginate(filter, PaymentSortFields, "created_at")).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// CountForTenant counts a tenant's payments matching filter
func (r *GormPaymentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&payment.Payment{}).Scopes(tenantScope(tenantID)), filter).
		Count(&count).Error
	return count, err
}

// Save inserts a new payment or applies a version-guarded update
func (r *GormPaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	result := r.db.WithContext(ctx).
		Model(&payment.Payment{}).
		Where("tenant_id = ? AND id = ? AND version = ?", p.TenantID, p.ID, p.Version-1).
		Updates(map[string]interface{}{
			"status":         p.Status,
			"external_ref":   p.ExternalRef,
			"check_number":   p.CheckNumber,
			"memo":           p.Memo,
			"failure_reason": p.FailureReason,
			"paid_at":        p.PaidAt,
			"voided_at":      p.VoidedAt,
			"version":        p.Version,
			"updated_at":     p.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error, ErrDuplicateCheckNumber)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var existing int64
	if err := r.db.WithContext(ctx).Model(&payment.Payment{}).Where("id = ?", p.ID).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return shared.ErrConcurrencyConflict
	}
	return translateError(r.db.WithContext(ctx).Create(p).Error, ErrDuplicateCheckNumber)
}

// CreateCheck allocates the tenant's next check number and inserts the
// payment in the same transaction. The sequence row is created on first use
// and only ever advanced with a single UPDATE ... RETURNING.
func (r *GormPaymentRepository) CreateCheck(ctx context.Context, p *payment.Payment) error {
	if p.Method != payment.MethodCheck {
		return shared.NewDomainError("INVALID_STATE", "Only check payments carry a check number")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		seed := payment.CheckSequence{TenantID: p.TenantID, NextNumber: r.firstCheck, UpdatedAt: now}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return fmt.Errorf("failed to seed check sequence: %w", err)
		}

		var next int64
		if err := tx.Raw(
			"UPDATE check_sequences SET next_number = next_number + 1, updated_at = ? WHERE tenant_id = ? RETURNING next_number",
			now, p.TenantID,
		).Scan(&next).Error; err != nil {
			return fmt.Errorf("failed to allocate check number: %w", err)
		}
		if next <= r.firstCheck {
			return fmt.Errorf("check sequence for tenant %s returned %d", p.TenantID, next)
		}

		if err := p.AssignCheckNumber(next - 1); err != nil {
			return err
		}
		return translateError(tx.Create(p).Error, ErrDuplicateCheckNumber)
	})
}

func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(payee) LIKE ?", searchPattern(filter.Search))
	}
	if status, ok := stringFilter(filter, "status"); ok {
		query = query.Where("status = ?", status)
	}
	if method, ok := stringFilter(filter, "method"); ok {
		query = query.Where("method = ?", method)
	}
	return query
}

var _ payment.PaymentRepository = (*GormPaymentRepository)(nil)
