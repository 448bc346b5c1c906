package procurement

import (
	"time"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoodsReceipt records what physically arrived against a purchase order
type GoodsReceipt struct {
	shared.TenantAggregateRoot
	PurchaseOrderID uuid.UUID          `gorm:"type:uuid;not null;index"`
	ReceivedAt      time.Time          `gorm:"not null"`
	ReceivedBy      string             `gorm:"type:varchar(200)"`
	Lines           []GoodsReceiptLine `gorm:"foreignKey:GoodsReceiptID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (GoodsReceipt) TableName() string {
	return "goods_receipts"
}

// GoodsReceiptLine is one received item
type GoodsReceiptLine struct {
	shared.BaseEntity
	GoodsReceiptID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemCode       string          `gorm:"type:varchar(50);not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (GoodsReceiptLine) TableName() string {
	return "goods_receipt_lines"
}

// NewGoodsReceipt records a delivery. Every received item must be on the
// order.
func NewGoodsReceipt(po *PurchaseOrder, receivedBy string, receivedAt time.Time, lines []LineInput) (*GoodsReceipt, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_LINES", "Goods receipt needs at least one line")
	}
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	gr := &GoodsReceipt{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(po.TenantID),
		PurchaseOrderID:     po.ID,
		ReceivedAt:          receivedAt,
		ReceivedBy:          receivedBy,
	}
	for _, in := range lines {
		if err := validateLine(in, false); err != nil {
			return nil, err
		}
		if !po.HasItem(in.ItemCode) {
			return nil, shared.NewDomainError("ITEM_NOT_ON_ORDER", "Received item "+normalizeItemCode(in.ItemCode)+" is not on the purchase order")
		}
		gr.Lines = append(gr.Lines, GoodsReceiptLine{
			BaseEntity:     shared.NewBaseEntity(),
			GoodsReceiptID: gr.ID,
			ItemCode:       normalizeItemCode(in.ItemCode),
			Quantity:       in.Quantity,
		})
	}
	return gr, nil
}
