// Package demand holds ticket sales history and turns it into the period
// series consumed by forecasting.
package demand

import (
	"strings"
	"time"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketSale is one completed ticket order line
type TicketSale struct {
	shared.TenantAggregateRoot
	EventID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Channel  string          `gorm:"type:varchar(50);not null;default:'web'"`
	Quantity int             `gorm:"not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency string          `gorm:"type:varchar(3);not null;default:'USD'"`
	SoldAt   time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (TicketSale) TableName() string {
	return "ticket_sales"
}

// NewTicketSale records a sale
func NewTicketSale(tenantID, eventID uuid.UUID, channel string, quantity int, amount decimal.Decimal, soldAt time.Time) (*TicketSale, error) {
	if eventID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EVENT", "Event ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if soldAt.IsZero() {
		soldAt = time.Now()
	}
	channel = strings.ToLower(strings.TrimSpace(channel))
	if channel == "" {
		channel = "web"
	}

	return &TicketSale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		EventID:             eventID,
		Channel:             channel,
		Quantity:            quantity,
		Amount:              amount,
		Currency:            "USD",
		SoldAt:              soldAt.UTC(),
	}, nil
}
