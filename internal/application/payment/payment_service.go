// Package payment disburses vendor payments and reconciles card payments
// from gateway webhooks.
package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ghxstship/backend/internal/domain/payment"
	"github.com/ghxstship/backend/internal/domain/procurement"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/ghxstship/backend/internal/infrastructure/cache"
	"github.com/ghxstship/backend/internal/infrastructure/logger"
	"github.com/ghxstship/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	webhookDedupePrefix = "stripe:event:"
	defaultDedupeTTL    = 72 * time.Hour
)

// Webhook outcomes
const (
	WebhookProcessed = "processed"
	WebhookDuplicate = "duplicate"
	WebhookIgnored   = "ignored"
	WebhookUnknown   = "unknown_intent"
	WebhookStale     = "stale"
)

// ErrInvoiceNotMatched is returned when paying an invoice that has not
// passed the three-way match
var ErrInvoiceNotMatched = shared.NewDomainError("INVOICE_NOT_MATCHED", "Invoice has not passed the three-way match")

// PaymentService creates, voids and settles vendor payments
type PaymentService struct {
	payments  payment.PaymentRepository
	invoices  procurement.VendorInvoiceRepository
	gateway   payment.CardGateway
	dedupe    cache.Store
	dedupeTTL time.Duration
	metrics   *telemetry.DomainMetrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewPaymentService creates a new PaymentService. dedupe records processed
// webhook event ids.
func NewPaymentService(
	payments payment.PaymentRepository,
	invoices procurement.VendorInvoiceRepository,
	gateway payment.CardGateway,
	dedupe cache.Store,
	log *zap.Logger,
) *PaymentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PaymentService{
		payments:  payments,
		invoices:  invoices,
		gateway:   gateway,
		dedupe:    dedupe,
		dedupeTTL: defaultDedupeTTL,
		logger:    log,
		now:       time.Now,
	}
}

// SetDomainMetrics attaches payment metrics
func (s *PaymentService) SetDomainMetrics(m *telemetry.DomainMetrics) {
	s.metrics = m
}

// Create records a payment. Checks get the tenant's next check number, card
// payments open a gateway intent, ACH payments stay pending.
func (s *PaymentService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreatePaymentRequest) (resp *PaymentResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, "PaymentService", "Create",
		attribute.String("payment.method", req.Method))
	defer func() { telemetry.EndSpan(span, err) }()

	p, err := payment.NewPayment(tenantID, req.Payee, payment.Method(req.Method), req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}
	p.PayeeEmail = strings.TrimSpace(req.PayeeEmail)
	p.Memo = req.Memo
	p.SetCreatedBy(userID)

	if req.InvoiceID != nil {
		inv, err := s.invoices.FindByIDForTenant(ctx, tenantID, *req.InvoiceID)
		if err != nil {
			return nil, err
		}
		if inv.MatchStatus != procurement.MatchMatched {
			return nil, ErrInvoiceNotMatched
		}
		p.InvoiceID = &inv.ID
	}

	var clientSecret string
	switch p.Method {
	case payment.MethodCheck:
		err = s.payments.CreateCheck(ctx, p)
	case payment.MethodCard:
		clientSecret, err = s.createCard(ctx, p)
	default:
		err = s.payments.Save(ctx, p)
	}
	if err != nil {
		s.metrics.RecordPayment(ctx, tenantID, string(p.Method), "error", p.MinorUnits())
		return nil, err
	}
	s.metrics.RecordPayment(ctx, tenantID, string(p.Method), string(p.Status), p.MinorUnits())

	fields := []zap.Field{
		zap.String("payment_id", p.ID.String()),
		zap.String("method", string(p.Method)),
		zap.String("status", string(p.Status)),
	}
	if p.CheckNumber != nil {
		fields = append(fields, zap.Int64("check_number", *p.CheckNumber))
	}
	logger.Enrich(ctx, s.logger).Info("Payment created", fields...)

	out := ToPaymentResponse(p)
	out.ClientSecret = clientSecret
	return &out, nil
}

// createCard opens the gateway intent before persisting, so a gateway
// failure leaves nothing behind. The payment id is the idempotency key.
func (s *PaymentService) createCard(ctx context.Context, p *payment.Payment) (string, error) {
	intent, err := s.gateway.CreateIntent(ctx, payment.IntentRequest{
		PaymentID:      p.ID,
		TenantID:       p.TenantID,
		AmountMinor:    p.MinorUnits(),
		Currency:       p.Currency,
		Description:    "Payment to " + p.Payee,
		ReceiptEmail:   p.PayeeEmail,
		IdempotencyKey: p.ID.String(),
	})
	if err != nil {
		return "", err
	}
	if err := p.AttachIntent(intent.ID); err != nil {
		return "", err
	}
	if err := s.payments.Save(ctx, p); err != nil {
		if cancelErr := s.gateway.CancelIntent(ctx, intent.ID); cancelErr != nil {
			logger.Enrich(ctx, s.logger).Error("Failed to cancel orphaned intent",
				zap.String("intent_id", intent.ID), zap.Error(cancelErr))
		}
		return "", err
	}
	return intent.ClientSecret, nil
}

// GetByID returns one payment
func (s *PaymentService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*PaymentResponse, error) {
	p, err := s.payments.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(p)
	return &resp, nil
}

// List returns a page of payments
func (s *PaymentService) List(ctx context.Context, tenantID uuid.UUID, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	f := shared.DefaultFilter()
	f.Search = filter.Search
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		f = f.Where("status", filter.Status)
	}
	if filter.Method != "" {
		f = f.Where("method", filter.Method)
	}

	payments, err := s.payments.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.payments.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]PaymentResponse, len(payments))
	for i := range payments {
		out[i] = ToPaymentResponse(&payments[i])
	}
	return out, total, nil
}

// Void cancels an unsettled payment. A processing card payment has its
// gateway intent cancelled first.
func (s *PaymentService) Void(ctx context.Context, tenantID, id uuid.UUID) (*PaymentResponse, error) {
	p, err := s.payments.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if p.Method == payment.MethodCard && p.Status == payment.StatusProcessing && p.ExternalRef != "" {
		if err := s.gateway.CancelIntent(ctx, p.ExternalRef); err != nil {
			return nil, err
		}
	}
	if err := p.Void(s.now()); err != nil {
		return nil, err
	}
	if err := s.payments.Save(ctx, p); err != nil {
		return nil, err
	}
	s.metrics.RecordPayment(ctx, tenantID, string(p.Method), string(p.Status), p.MinorUnits())
	resp := ToPaymentResponse(p)
	return &resp, nil
}

// HandleWebhook verifies and applies a gateway notification. Each event id
// is applied at most once; redeliveries are acknowledged without effect.
// Only signature failures and storage errors are returned, so the gateway
// stops retrying events that can never apply.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (result *WebhookResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "PaymentService", "HandleWebhook")
	defer func() { telemetry.EndSpan(span, err) }()
	log := logger.Enrich(ctx, s.logger)

	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		s.metrics.RecordWebhook(ctx, "rejected")
		return nil, err
	}
	result = &WebhookResult{EventID: event.ID}
	defer func() {
		if result != nil {
			s.metrics.RecordWebhook(ctx, result.Outcome)
		}
	}()

	if event.Type == payment.GatewayEventIgnored {
		result.Outcome = WebhookIgnored
		return result, nil
	}

	dedupeKey := webhookDedupePrefix + event.ID
	first, err := s.dedupe.SetNX(ctx, dedupeKey, []byte(event.IntentID), s.dedupeTTL)
	if err != nil {
		// status transitions are idempotent, so a cache outage only costs
		// the short-circuit
		log.Warn("Webhook de-duplication unavailable", zap.Error(err))
		first = true
	}
	if !first {
		result.Outcome = WebhookDuplicate
		return result, nil
	}

	p, err := s.payments.FindByExternalRef(ctx, event.IntentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			log.Warn("Webhook for unknown payment intent",
				zap.String("event_id", event.ID), zap.String("intent_id", event.IntentID))
			result.Outcome = WebhookUnknown
			return result, nil
		}
		s.release(ctx, dedupeKey)
		return nil, err
	}
	result.PaymentID = p.ID.String()

	switch event.Type {
	case payment.GatewayEventSucceeded:
		err = p.MarkPaid(s.now())
	case payment.GatewayEventFailed:
		err = p.MarkFailed(event.FailureReason)
	}
	if err != nil {
		log.Info("Webhook does not apply to payment state",
			zap.String("payment_id", p.ID.String()),
			zap.String("status", string(p.Status)),
			zap.String("event_type", string(event.Type)))
		result.Outcome = WebhookStale
		return result, nil
	}

	if err := s.payments.Save(ctx, p); err != nil {
		s.release(ctx, dedupeKey)
		return nil, err
	}
	s.metrics.RecordPayment(ctx, p.TenantID, string(p.Method), string(p.Status), p.MinorUnits())
	log.Info("Payment settled from webhook",
		zap.String("payment_id", p.ID.String()),
		zap.String("status", string(p.Status)))

	result.Outcome = WebhookProcessed
	return result, nil
}

// release forgets an event so the gateway's retry is processed
func (s *PaymentService) release(ctx context.Context, key string) {
	if err := s.dedupe.Delete(ctx, key); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to release webhook event", zap.String("key", key), zap.Error(err))
	}
}
