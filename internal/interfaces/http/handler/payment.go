package handler

import (
	paymentapp "github.com/ghxstship/backend/internal/application/payment"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles outgoing vendor payments
type PaymentHandler struct {
	BaseHandler
	payments *paymentapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments *paymentapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Create godoc
// @ID           createPayment
// @Summary      Pay a vendor
// @Description  Checks get the tenant's next check number. Card payments return the PaymentIntent client secret and settle through the Stripe webhook.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body paymentapp.CreatePaymentRequest true "Payment"
// @Success      201 {object} APIResponse[paymentapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse "Invoice not matched or card payments disabled"
// @Security     BearerAuth
// @Router       /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req paymentapp.CreatePaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.payments.Create(c.Request.Context(), tenantID, getUserID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID godoc
// @ID           getPaymentById
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[paymentapp.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.payments.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listPayments
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        search    query string false "Search payee or memo"
// @Param        status    query string false "Status" Enums(pending, issued, processing, paid, failed, voided)
// @Param        method    query string false "Method" Enums(check, ach, card)
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} ListResponse[paymentapp.PaymentResponse]
// @Security     BearerAuth
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter paymentapp.PaymentListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	defaultPaging(&filter.Page, &filter.PageSize)

	items, total, err := h.payments.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Void godoc
// @ID           voidPayment
// @Summary      Void a payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[paymentapp.PaymentResponse]
// @Failure      422 {object} ErrorResponse "Already settled"
// @Security     BearerAuth
// @Router       /payments/{id}/void [post]
func (h *PaymentHandler) Void(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.payments.Void(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
