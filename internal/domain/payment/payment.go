// Package payment models outgoing vendor payments by check, ACH or card.
package payment

import (
	"strings"
	"time"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Method is how a payment is disbursed
type Method string

const (
	MethodCheck Method = "check"
	MethodACH   Method = "ach"
	MethodCard  Method = "card"
)

// IsValid reports whether m is a known method
func (m Method) IsValid() bool {
	switch m {
	case MethodCheck, MethodACH, MethodCard:
		return true
	}
	return false
}

// Status of a payment
type Status string

const (
	StatusPending    Status = "pending"
	StatusIssued     Status = "issued"
	StatusProcessing Status = "processing"
	StatusPaid       Status = "paid"
	StatusFailed     Status = "failed"
	StatusVoided     Status = "voided"
)

// Payment is an outgoing payment to a payee
type Payment struct {
	shared.TenantAggregateRoot
	Payee         string          `gorm:"type:varchar(200);not null"`
	PayeeEmail    string          `gorm:"type:varchar(200)"`
	Method        Method          `gorm:"type:varchar(20);not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Status        Status          `gorm:"type:varchar(20);not null;index"`
	CheckNumber   *int64          `gorm:"index"`
	ExternalRef   string          `gorm:"type:varchar(100);index"`
	InvoiceID     *uuid.UUID      `gorm:"type:uuid;index"`
	Memo          string          `gorm:"type:text"`
	FailureReason string          `gorm:"type:text"`
	PaidAt        *time.Time
	VoidedAt      *time.Time
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a pending payment. Check payments become issued once a
// check number is assigned; card payments become processing once a gateway
// intent is attached.
func NewPayment(tenantID uuid.UUID, payee string, method Method, amount decimal.Decimal, currency string) (*Payment, error) {
	if strings.TrimSpace(payee) == "" {
		return nil, shared.NewDomainError("INVALID_PAYEE", "Payee cannot be empty")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Payment method must be check, ach or card")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USD"
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter ISO code")
	}

	return &Payment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Payee:               payee,
		Method:              method,
		Amount:              amount,
		Currency:            currency,
		Status:              StatusPending,
	}, nil
}

// AssignCheckNumber issues the check under number
func (p *Payment) AssignCheckNumber(number int64) error {
	if p.Method != MethodCheck {
		return shared.NewDomainError("INVALID_STATE", "Only check payments carry a check number")
	}
	if p.CheckNumber != nil {
		return shared.NewDomainError("INVALID_STATE", "Check number already assigned")
	}
	if number <= 0 {
		return shared.NewDomainError("INVALID_CHECK_NUMBER", "Check number must be positive")
	}
	p.CheckNumber = &number
	p.Status = StatusIssued
	p.touch()
	return nil
}

// AttachIntent records the payment provider's reference for a card payment
func (p *Payment) AttachIntent(ref string) error {
	if p.Method != MethodCard {
		return shared.NewDomainError("INVALID_STATE", "Only card payments have a provider intent")
	}
	if ref == "" {
		return shared.NewDomainError("INVALID_REFERENCE", "Provider reference cannot be empty")
	}
	p.ExternalRef = ref
	p.Status = StatusProcessing
	p.touch()
	return nil
}

// MarkPaid settles the payment
func (p *Payment) MarkPaid(at time.Time) error {
	switch p.Status {
	case StatusPaid:
		return nil
	case StatusVoided, StatusFailed:
		return shared.NewDomainError("INVALID_STATE", "Payment can no longer be settled")
	}
	p.Status = StatusPaid
	p.PaidAt = &at
	p.touch()
	return nil
}

// MarkFailed records a provider failure
func (p *Payment) MarkFailed(reason string) error {
	if p.Status == StatusPaid || p.Status == StatusVoided {
		return shared.NewDomainError("INVALID_STATE", "Settled or voided payments cannot fail")
	}
	p.Status = StatusFailed
	p.FailureReason = reason
	p.touch()
	return nil
}

// Void cancels a payment that has not settled
func (p *Payment) Void(at time.Time) error {
	switch p.Status {
	case StatusPending, StatusIssued, StatusProcessing:
	default:
		return shared.NewDomainError("INVALID_STATE", "Only unsettled payments can be voided")
	}
	p.Status = StatusVoided
	p.VoidedAt = &at
	p.touch()
	return nil
}

// MinorUnits returns the amount in the currency's minor unit (cents)
func (p *Payment) MinorUnits() int64 {
	return p.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func (p *Payment) touch() {
	p.MarkModified(time.Now())
}
