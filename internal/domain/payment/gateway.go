package payment

import (
	"context"

	"github.com/google/uuid"
)

// IntentRequest asks the card gateway to start collecting a payment
type IntentRequest struct {
	PaymentID      uuid.UUID
	TenantID       uuid.UUID
	AmountMinor    int64
	Currency       string
	Description    string
	ReceiptEmail   string
	IdempotencyKey string
}

// Intent is the gateway's handle for an in-flight card payment
type Intent struct {
	ID           string
	Status       string
	ClientSecret string
}

// GatewayEventType classifies asynchronous gateway notifications
type GatewayEventType string

const (
	GatewayEventSucceeded GatewayEventType = "succeeded"
	GatewayEventFailed    GatewayEventType = "failed"
	GatewayEventIgnored   GatewayEventType = "ignored"
)

// GatewayEvent is a verified webhook notification
type GatewayEvent struct {
	ID            string
	Type          GatewayEventType
	IntentID      string
	FailureReason string
}

// CardGateway is the payments provider
type CardGateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	CancelIntent(ctx context.Context, intentID string) error
	// ParseWebhook verifies a webhook signature and decodes the event
	ParseWebhook(payload []byte, signature string) (*GatewayEvent, error)
}
