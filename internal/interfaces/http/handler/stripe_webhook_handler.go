package handler

import (
	"io"
	"net/http"

	paymentapp "github.com/ghxstship/backend/internal/application/payment"
	"github.com/ghxstship/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Stripe webhooks are small; anything bigger is not from Stripe
const maxWebhookPayloadSize = 65536

// StripeWebhookHandler receives Stripe events. It is mounted outside JWT auth
// and trusts only the Stripe-Signature header.
type StripeWebhookHandler struct {
	BaseHandler
	payments *paymentapp.PaymentService
}

// NewStripeWebhookHandler creates a new StripeWebhookHandler
func NewStripeWebhookHandler(payments *paymentapp.PaymentService) *StripeWebhookHandler {
	return &StripeWebhookHandler{payments: payments}
}

// HandleStripeWebhook godoc
// @ID           handleStripeWebhook
// @Summary      Receive a Stripe event
// @Description  Settles or fails card payments. Replays and events for unknown intents are acknowledged with 200 so Stripe stops retrying.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature header string true "Stripe webhook signature"
// @Success      200 {object} APIResponse[paymentapp.WebhookResult]
// @Failure      400 {object} ErrorResponse "Invalid signature"
// @Failure      413 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse "Processing failed; Stripe will retry"
// @Router       /webhooks/stripe [post]
func (h *StripeWebhookHandler) HandleStripeWebhook(c *gin.Context) {
	// Signature verification needs the exact bytes Stripe sent.
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}
	if len(payload) > maxWebhookPayloadSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Payload too large")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidSignature, "Missing Stripe-Signature header")
		return
	}

	result, err := h.payments.HandleWebhook(c.Request.Context(), payload, signature)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}
