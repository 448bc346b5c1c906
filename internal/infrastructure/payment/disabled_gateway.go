package payment

import (
	"context"

	"github.com/ghxstship/backend/internal/domain/payment"
	"github.com/ghxstship/backend/internal/domain/shared"
)

// ErrCardPaymentsDisabled is returned when Stripe is not configured
var ErrCardPaymentsDisabled = shared.NewDomainError("CARD_PAYMENTS_DISABLED", "Card payments are not enabled")

// DisabledGateway rejects card operations. Check and ACH payments never
// reach the gateway.
type DisabledGateway struct{}

// CreateIntent always fails
func (DisabledGateway) CreateIntent(context.Context, payment.IntentRequest) (*payment.Intent, error) {
	return nil, ErrCardPaymentsDisabled
}

// CancelIntent always fails
func (DisabledGateway) CancelIntent(context.Context, string) error {
	return ErrCardPaymentsDisabled
}

// ParseWebhook always fails
func (DisabledGateway) ParseWebhook([]byte, string) (*payment.GatewayEvent, error) {
	return nil, ErrCardPaymentsDisabled
}

var _ payment.CardGateway = DisabledGateway{}
