// Package payment implements the card gateway on Stripe.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ghxstship/backend/internal/domain/payment"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"
)

// ErrInvalidSignature is returned when a webhook fails verification
var ErrInvalidSignature = shared.NewDomainError("INVALID_SIGNATURE", "Webhook signature verification failed")

// StripeConfig holds the credentials the gateway needs
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

// Validate checks the configuration
func (c StripeConfig) Validate() error {
	if c.SecretKey == "" {
		return errors.New("stripe: secret key is required")
	}
	if !strings.HasPrefix(c.SecretKey, "sk_") && !strings.HasPrefix(c.SecretKey, "rk_") {
		return errors.New("stripe: secret key must start with sk_ or rk_")
	}
	return nil
}

// StripeGateway implements payment.CardGateway with PaymentIntents
type StripeGateway struct {
	intents       *paymentintent.Client
	webhookSecret string
	logger        *zap.Logger
}

// StripeGatewayOption configures a StripeGateway
type StripeGatewayOption func(*StripeGateway)

// WithBackend replaces the Stripe API backend, e.g. with one pointed at a
// test server
func WithBackend(b stripe.Backend) StripeGatewayOption {
	return func(g *StripeGateway) {
		g.intents.B = b
	}
}

// NewStripeGateway creates a gateway using the given credentials
func NewStripeGateway(cfg StripeConfig, logger *zap.Logger, opts ...StripeGatewayOption) (*StripeGateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &StripeGateway{
		intents: &paymentintent.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: cfg.SecretKey,
		},
		webhookSecret: cfg.WebhookSecret,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// CreateIntent starts a PaymentIntent for the payment
func (g *StripeGateway) CreateIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountMinor),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	params.AddMetadata("payment_id", req.PaymentID.String())
	params.AddMetadata("tenant_id", req.TenantID.String())

	pi, err := g.intents.New(params)
	if err != nil {
		g.logger.Error("Failed to create Stripe payment intent",
			zap.String("payment_id", req.PaymentID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to create payment intent: %w", err)
	}

	g.logger.Info("Created Stripe payment intent",
		zap.String("payment_id", req.PaymentID.String()),
		zap.String("intent_id", pi.ID))

	return &payment.Intent{
		ID:           pi.ID,
		Status:       string(pi.Status),
		ClientSecret: pi.ClientSecret,
	}, nil
}

// CancelIntent cancels an unsettled PaymentIntent
func (g *StripeGateway) CancelIntent(ctx context.Context, intentID string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	if _, err := g.intents.Cancel(intentID, params); err != nil {
		return fmt.Errorf("stripe: failed to cancel payment intent %s: %w", intentID, err)
	}
	return nil
}

// ParseWebhook verifies the Stripe-Signature header and maps the event.
// Event types other than payment_intent outcomes come back as
// GatewayEventIgnored.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*payment.GatewayEvent, error) {
	if g.webhookSecret == "" {
		return nil, ErrInvalidSignature
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		g.logger.Warn("Rejected Stripe webhook", zap.Error(err))
		return nil, ErrInvalidSignature
	}

	out := &payment.GatewayEvent{ID: event.ID, Type: payment.GatewayEventIgnored}
	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded:
		out.Type = payment.GatewayEventSucceeded
	case stripe.EventTypePaymentIntentPaymentFailed, stripe.EventTypePaymentIntentCanceled:
		out.Type = payment.GatewayEventFailed
	default:
		return out, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("stripe: failed to decode payment intent: %w", err)
	}
	out.IntentID = pi.ID
	if out.Type == payment.GatewayEventFailed {
		switch {
		case pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "":
			out.FailureReason = pi.LastPaymentError.Msg
		case pi.CancellationReason != "":
			out.FailureReason = "canceled: " + string(pi.CancellationReason)
		default:
			out.FailureReason = "payment failed"
		}
	}
	return out, nil
}

var _ payment.CardGateway = (*StripeGateway)(nil)
