package payment

import (
	"time"

	"github.com/ghxstship/backend/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest creates a vendor payment
type CreatePaymentRequest struct {
	Payee      string          `json:"payee" binding:"required,min=1,max=200"`
	PayeeEmail string          `json:"payee_email" binding:"omitempty,email,max=200"`
	Method     string          `json:"method" binding:"required,oneof=check ach card"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Currency   string          `json:"currency" binding:"omitempty,iso4217"`
	InvoiceID  *uuid.UUID      `json:"invoice_id"`
	Memo       string          `json:"memo" binding:"max=2000"`
}

// PaymentResponse represents a payment. ClientSecret is only set on the
// response to creating a card payment.
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	Payee         string          `json:"payee"`
	PayeeEmail    string          `json:"payee_email,omitempty"`
	Method        string          `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	CheckNumber   *int64          `json:"check_number,omitempty"`
	ExternalRef   string          `json:"external_ref,omitempty"`
	ClientSecret  string          `json:"client_secret,omitempty"`
	InvoiceID     *uuid.UUID      `json:"invoice_id,omitempty"`
	Memo          string          `json:"memo,omitempty"`
	FailureReason string          `json:"failure_reason,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	VoidedAt      *time.Time      `json:"voided_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	Version       int             `json:"version"`
}

// ToPaymentResponse converts a domain payment
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		Payee:         p.Payee,
		PayeeEmail:    p.PayeeEmail,
		Method:        string(p.Method),
		Amount:        p.Amount,
		Currency:      p.Currency,
		Status:        string(p.Status),
		CheckNumber:   p.CheckNumber,
		ExternalRef:   p.ExternalRef,
		InvoiceID:     p.InvoiceID,
		Memo:          p.Memo,
		FailureReason: p.FailureReason,
		PaidAt:        p.PaidAt,
		VoidedAt:      p.VoidedAt,
		CreatedAt:     p.CreatedAt,
		Version:       p.Version,
	}
}

// PaymentListFilter holds list parameters
type PaymentListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=pending issued processing paid failed voided"`
	Method   string `form:"method" binding:"omitempty,oneof=check ach card"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// WebhookResult summarizes how a gateway notification was handled
type WebhookResult struct {
	EventID   string `json:"event_id"`
	Outcome   string `json:"outcome"`
	PaymentID string `json:"payment_id,omitempty"`
}
