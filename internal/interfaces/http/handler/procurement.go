package handler

import (
	procurementapp "github.com/ghxstship/backend/internal/application/procurement"
	"github.com/gin-gonic/gin"
)

// ProcurementHandler handles purchase orders, receipts and vendor invoices
type ProcurementHandler struct {
	BaseHandler
	procurement *procurementapp.ProcurementService
}

// NewProcurementHandler creates a new ProcurementHandler
func NewProcurementHandler(procurement *procurementapp.ProcurementService) *ProcurementHandler {
	return &ProcurementHandler{procurement: procurement}
}

// CreatePurchaseOrder godoc
// @ID           createPurchaseOrder
// @Summary      Create a purchase order
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        request body procurementapp.CreatePurchaseOrderRequest true "Purchase order"
// @Success      201 {object} APIResponse[procurementapp.PurchaseOrderResponse]
// @Failure      409 {object} ErrorResponse "Number already used"
// @Security     BearerAuth
// @Router       /procurement/purchase-orders [post]
func (h *ProcurementHandler) CreatePurchaseOrder(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req procurementapp.CreatePurchaseOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.procurement.CreatePurchaseOrder(c.Request.Context(), tenantID, getUserID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetPurchaseOrder godoc
// @ID           getPurchaseOrderById
// @Summary      Get a purchase order with its receipts and invoices
// @Tags         procurement
// @Produce      json
// @Param        id path string true "Purchase order ID" format(uuid)
// @Success      200 {object} APIResponse[procurementapp.PurchaseOrderDetailResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /procurement/purchase-orders/{id} [get]
func (h *ProcurementHandler) GetPurchaseOrder(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.procurement.GetPurchaseOrder(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListPurchaseOrders godoc
// @ID           listPurchaseOrders
// @Summary      List purchase orders
// @Tags         procurement
// @Produce      json
// @Param        search    query string false "Search number or vendor"
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} ListResponse[procurementapp.PurchaseOrderResponse]
// @Security     BearerAuth
// @Router       /procurement/purchase-orders [get]
func (h *ProcurementHandler) ListPurchaseOrders(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter procurementapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	defaultPaging(&filter.Page, &filter.PageSize)

	items, err := h.procurement.ListPurchaseOrders(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, items)
}

// RecordReceipt godoc
// @ID           recordGoodsReceipt
// @Summary      Record goods received against a purchase order
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        id      path string                               true "Purchase order ID" format(uuid)
// @Param        request body procurementapp.RecordReceiptRequest true "Receipt"
// @Success      201 {object} APIResponse[procurementapp.ReceiptResponse]
// @Failure      422 {object} ErrorResponse "Item not on order"
// @Security     BearerAuth
// @Router       /procurement/purchase-orders/{id}/receipts [post]
func (h *ProcurementHandler) RecordReceipt(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req procurementapp.RecordReceiptRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.procurement.RecordReceipt(c.Request.Context(), tenantID, id, getUserID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// RecordInvoice godoc
// @ID           recordVendorInvoice
// @Summary      Record a vendor invoice against a purchase order
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        id      path string                               true "Purchase order ID" format(uuid)
// @Param        request body procurementapp.RecordInvoiceRequest true "Invoice"
// @Success      201 {object} APIResponse[procurementapp.InvoiceResponse]
// @Failure      409 {object} ErrorResponse "Invoice number already used"
// @Security     BearerAuth
// @Router       /procurement/purchase-orders/{id}/invoices [post]
func (h *ProcurementHandler) RecordInvoice(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req procurementapp.RecordInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.procurement.RecordInvoice(c.Request.Context(), tenantID, id, getUserID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetInvoice godoc
// @ID           getVendorInvoiceById
// @Summary      Get a vendor invoice and its last match result
// @Tags         procurement
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[procurementapp.InvoiceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /procurement/invoices/{id} [get]
func (h *ProcurementHandler) GetInvoice(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.procurement.GetInvoice(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Match godoc
// @ID           matchVendorInvoice
// @Summary      Three-way match an invoice against its order and receipts
// @Tags         procurement
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[procurementapp.InvoiceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /procurement/invoices/{id}/match [post]
func (h *ProcurementHandler) Match(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.procurement.Match(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
