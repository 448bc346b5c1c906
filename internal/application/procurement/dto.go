package procurement

import (
	"time"

	"github.com/ghxstship/backend/internal/domain/procurement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineRequest is one document line
type LineRequest struct {
	ItemCode    string          `json:"item_code" binding:"required,max=50"`
	Description string          `json:"description" binding:"max=200"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func toLineInputs(lines []LineRequest) []procurement.LineInput {
	out := make([]procurement.LineInput, len(lines))
	for i, l := range lines {
		out[i] = procurement.LineInput{
			ItemCode:    l.ItemCode,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		}
	}
	return out
}

// CreatePurchaseOrderRequest creates a purchase order
type CreatePurchaseOrderRequest struct {
	Number     string        `json:"number" binding:"required,max=50"`
	VendorName string        `json:"vendor_name" binding:"required,max=200"`
	ProjectID  *uuid.UUID    `json:"project_id"`
	Currency   string        `json:"currency" binding:"omitempty,iso4217"`
	Lines      []LineRequest `json:"lines" binding:"required,min=1,max=500,dive"`
}

// RecordReceiptRequest records a goods receipt
type RecordReceiptRequest struct {
	ReceivedBy string        `json:"received_by" binding:"max=200"`
	ReceivedAt time.Time     `json:"received_at"`
	Lines      []LineRequest `json:"lines" binding:"required,min=1,max=500,dive"`
}

// RecordInvoiceRequest records a vendor invoice
type RecordInvoiceRequest struct {
	InvoiceNumber string        `json:"invoice_number" binding:"required,max=100"`
	InvoiceDate   time.Time     `json:"invoice_date"`
	Lines         []LineRequest `json:"lines" binding:"required,min=1,max=500,dive"`
}

// LineResponse is one document line
type LineResponse struct {
	ItemCode    string          `json:"item_code"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price,omitempty"`
}

// PurchaseOrderResponse represents a purchase order
type PurchaseOrderResponse struct {
	ID         uuid.UUID       `json:"id"`
	Number     string          `json:"number"`
	VendorName string          `json:"vendor_name"`
	ProjectID  *uuid.UUID      `json:"project_id,omitempty"`
	Currency   string          `json:"currency"`
	Total      decimal.Decimal `json:"total"`
	Lines      []LineResponse  `json:"lines"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToPurchaseOrderResponse converts a domain purchase order
func ToPurchaseOrderResponse(po *procurement.PurchaseOrder) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		ID:         po.ID,
		Number:     po.Number,
		VendorName: po.VendorName,
		ProjectID:  po.ProjectID,
		Currency:   po.Currency,
		Total:      decimal.Zero,
		Lines:      make([]LineResponse, len(po.Lines)),
		CreatedAt:  po.CreatedAt,
	}
	for i, l := range po.Lines {
		resp.Lines[i] = LineResponse{ItemCode: l.ItemCode, Description: l.Description, Quantity: l.Quantity, UnitPrice: l.UnitPrice}
		resp.Total = resp.Total.Add(l.Quantity.Mul(l.UnitPrice))
	}
	return resp
}

// ReceiptResponse represents a goods receipt
type ReceiptResponse struct {
	ID              uuid.UUID      `json:"id"`
	PurchaseOrderID uuid.UUID      `json:"purchase_order_id"`
	ReceivedBy      string         `json:"received_by,omitempty"`
	ReceivedAt      time.Time      `json:"received_at"`
	Lines           []LineResponse `json:"lines"`
}

func toReceiptResponse(gr *procurement.GoodsReceipt) ReceiptResponse {
	resp := ReceiptResponse{
		ID:              gr.ID,
		PurchaseOrderID: gr.PurchaseOrderID,
		ReceivedBy:      gr.ReceivedBy,
		ReceivedAt:      gr.ReceivedAt,
		Lines:           make([]LineResponse, len(gr.Lines)),
	}
	for i, l := range gr.Lines {
		resp.Lines[i] = LineResponse{ItemCode: l.ItemCode, Quantity: l.Quantity}
	}
	return resp
}

// InvoiceResponse represents a vendor invoice with its latest match
type InvoiceResponse struct {
	ID              uuid.UUID                `json:"id"`
	PurchaseOrderID uuid.UUID                `json:"purchase_order_id"`
	InvoiceNumber   string                   `json:"invoice_number"`
	InvoiceDate     time.Time                `json:"invoice_date"`
	Total           decimal.Decimal          `json:"total"`
	MatchStatus     string                   `json:"match_status"`
	MatchResult     *procurement.MatchResult `json:"match_result,omitempty"`
	MatchedAt       *time.Time               `json:"matched_at,omitempty"`
	Lines           []LineResponse           `json:"lines"`
}

// ToInvoiceResponse converts a domain invoice
func ToInvoiceResponse(inv *procurement.VendorInvoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:              inv.ID,
		PurchaseOrderID: inv.PurchaseOrderID,
		InvoiceNumber:   inv.InvoiceNumber,
		InvoiceDate:     inv.InvoiceDate,
		Total:           inv.Total(),
		MatchStatus:     string(inv.MatchStatus),
		MatchResult:     inv.MatchResult,
		MatchedAt:       inv.MatchedAt,
		Lines:           make([]LineResponse, len(inv.Lines)),
	}
	for i, l := range inv.Lines {
		resp.Lines[i] = LineResponse{ItemCode: l.ItemCode, Quantity: l.Quantity, UnitPrice: l.UnitPrice}
	}
	return resp
}

// PurchaseOrderDetailResponse is a purchase order with its receipts and
// invoices
type PurchaseOrderDetailResponse struct {
	PurchaseOrderResponse
	Receipts []ReceiptResponse `json:"receipts"`
	Invoices []InvoiceResponse `json:"invoices"`
}

// ListFilter holds purchase order list parameters
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}
