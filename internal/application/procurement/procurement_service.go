// Package procurement records purchase orders, goods receipts and vendor
// invoices, and runs the three-way match that clears invoices for payment.
package procurement

import (
	"context"
	"strings"
	"time"

	"github.com/ghxstship/backend/internal/domain/procurement"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/ghxstship/backend/internal/infrastructure/logger"
	"github.com/ghxstship/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ProcurementService handles procurement documents and matching
type ProcurementService struct {
	orders    procurement.PurchaseOrderRepository
	receipts  procurement.GoodsReceiptRepository
	invoices  procurement.VendorInvoiceRepository
	tolerance procurement.Tolerance
	metrics   *telemetry.DomainMetrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewProcurementService creates a new ProcurementService
func NewProcurementService(
	orders procurement.PurchaseOrderRepository,
	receipts procurement.GoodsReceiptRepository,
	invoices procurement.VendorInvoiceRepository,
	tolerance procurement.Tolerance,
	log *zap.Logger,
) *ProcurementService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProcurementService{
		orders:    orders,
		receipts:  receipts,
		invoices:  invoices,
		tolerance: tolerance,
		logger:    log,
		now:       time.Now,
	}
}

// ToleranceFromFractions builds match tolerances from configured fractions
func ToleranceFromFractions(quantity, price float64) procurement.Tolerance {
	return procurement.Tolerance{
		Quantity: decimal.NewFromFloat(quantity),
		Price:    decimal.NewFromFloat(price),
	}
}

// SetDomainMetrics attaches match metrics
func (s *ProcurementService) SetDomainMetrics(m *telemetry.DomainMetrics) {
	s.metrics = m
}

// CreatePurchaseOrder creates a purchase order with its lines
func (s *ProcurementService) CreatePurchaseOrder(ctx context.Context, tenantID, userID uuid.UUID, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	po, err := procurement.NewPurchaseOrder(tenantID, req.Number, req.VendorName, toLineInputs(req.Lines))
	if err != nil {
		return nil, err
	}
	po.ProjectID = req.ProjectID
	if req.Currency != "" {
		po.Currency = strings.ToUpper(req.Currency)
	}
	po.SetCreatedBy(userID)
	if err := s.orders.Create(ctx, po); err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(po)
	return &resp, nil
}

// GetPurchaseOrder returns a purchase order with its receipts and invoices
func (s *ProcurementService) GetPurchaseOrder(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrderDetailResponse, error) {
	po, err := s.orders.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	receipts, err := s.receipts.FindByPurchaseOrder(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.FindByPurchaseOrder(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	resp := &PurchaseOrderDetailResponse{
		PurchaseOrderResponse: ToPurchaseOrderResponse(po),
		Receipts:              make([]ReceiptResponse, len(receipts)),
		Invoices:              make([]InvoiceResponse, len(invoices)),
	}
	for i := range receipts {
		resp.Receipts[i] = toReceiptResponse(&receipts[i])
	}
	for i := range invoices {
		resp.Invoices[i] = ToInvoiceResponse(&invoices[i])
	}
	return resp, nil
}

// ListPurchaseOrders returns a page of purchase orders
func (s *ProcurementService) ListPurchaseOrders(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]PurchaseOrderResponse, error) {
	f := shared.DefaultFilter()
	f.Search = filter.Search
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	orders, err := s.orders.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	out := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		out[i] = ToPurchaseOrderResponse(&orders[i])
	}
	return out, nil
}

// RecordReceipt records goods received against a purchase order
func (s *ProcurementService) RecordReceipt(ctx context.Context, tenantID, poID, userID uuid.UUID, req RecordReceiptRequest) (*ReceiptResponse, error) {
	po, err := s.orders.FindByIDForTenant(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}
	receivedAt := req.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = s.now()
	}
	gr, err := procurement.NewGoodsReceipt(po, req.ReceivedBy, receivedAt, toLineInputs(req.Lines))
	if err != nil {
		return nil, err
	}
	gr.SetCreatedBy(userID)
	if err := s.receipts.Create(ctx, gr); err != nil {
		return nil, err
	}
	resp := toReceiptResponse(gr)
	return &resp, nil
}

// RecordInvoice records a vendor invoice against a purchase order. The
// invoice starts pending until matched.
func (s *ProcurementService) RecordInvoice(ctx context.Context, tenantID, poID, userID uuid.UUID, req RecordInvoiceRequest) (*InvoiceResponse, error) {
	po, err := s.orders.FindByIDForTenant(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}
	invoiceDate := req.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = s.now()
	}
	inv, err := procurement.NewVendorInvoice(po, req.InvoiceNumber, invoiceDate, toLineInputs(req.Lines))
	if err != nil {
		return nil, err
	}
	inv.SetCreatedBy(userID)
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// GetInvoice returns one vendor invoice
func (s *ProcurementService) GetInvoice(ctx context.Context, tenantID, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoices.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// Match runs the three-way match for an invoice against its purchase order
// and every receipt recorded so far, and stores the outcome. Matching again
// after more goods arrive replaces the earlier result.
func (s *ProcurementService) Match(ctx context.Context, tenantID, invoiceID uuid.UUID) (resp *InvoiceResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, "ProcurementService", "Match",
		attribute.String("invoice.id", invoiceID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	inv, err := s.invoices.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	po, err := s.orders.FindByIDForTenant(ctx, tenantID, inv.PurchaseOrderID)
	if err != nil {
		return nil, err
	}
	receipts, err := s.receipts.FindByPurchaseOrder(ctx, tenantID, po.ID)
	if err != nil {
		return nil, err
	}

	result := procurement.ThreeWayMatch(po, receipts, inv, s.tolerance)
	inv.ApplyMatch(result, s.now())
	if err := s.invoices.SaveMatch(ctx, inv); err != nil {
		return nil, err
	}

	s.metrics.RecordMatch(ctx, tenantID, string(result.Status))
	span.SetAttributes(attribute.String("match.status", string(result.Status)))
	logger.Enrich(ctx, s.logger).Info("Invoice matched",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("purchase_order", po.Number),
		zap.String("status", string(result.Status)),
		zap.String("variance", result.Variance.String()))

	out := ToInvoiceResponse(inv)
	return &out, nil
}
