package handler

import (
	"errors"
	"net/http"
	"strconv"

	forecastapp "github.com/ghxstship/backend/internal/application/forecast"
	"github.com/ghxstship/backend/internal/domain/demand"
	"github.com/ghxstship/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxImportUploadBytes bounds the multipart CSV upload
const maxImportUploadBytes = 8 << 20

// ForecastHandler serves demand forecasts and the ticket sales feeding them
type ForecastHandler struct {
	BaseHandler
	forecasts *forecastapp.ForecastService
	sales     *forecastapp.TicketSaleService
}

// NewForecastHandler creates a new ForecastHandler
func NewForecastHandler(forecasts *forecastapp.ForecastService, sales *forecastapp.TicketSaleService) *ForecastHandler {
	return &ForecastHandler{forecasts: forecasts, sales: sales}
}

// DemandForecastQuery documents the query parameters of DemandForecast
type DemandForecastQuery struct {
	EventID        string `form:"event_id" binding:"omitempty,uuid"`
	Metric         string `form:"metric" binding:"omitempty,oneof=revenue quantity"`
	Horizon        int    `form:"horizon" binding:"omitempty,min=1,max=36"`
	LookbackMonths int    `form:"lookback_months" binding:"omitempty,min=1,max=120"`
}

// DemandForecast godoc
// @ID           getDemandForecast
// @Summary      Forecast ticket demand
// @Description  Buckets recorded ticket sales into months and projects them forward
// @Tags         forecasts
// @Produce      json
// @Param        event_id         query    string false "Event ID" format(uuid)
// @Param        metric           query    string false "revenue or quantity" Enums(revenue, quantity)
// @Param        horizon          query    int    false "Months to project (1-36)" default(12)
// @Param        lookback_months  query    int    false "Months of history" default(36)
// @Success      200 {object} APIResponse[forecastapp.ForecastResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /forecasts/demand [get]
func (h *ForecastHandler) DemandForecast(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var q DemandForecastQuery
	if !h.bindQuery(c, &q) {
		return
	}

	query := forecastapp.DemandQuery{
		Metric:         demand.Metric(q.Metric),
		Horizon:        q.Horizon,
		LookbackMonths: q.LookbackMonths,
	}
	if q.EventID != "" {
		id := uuid.MustParse(q.EventID)
		query.EventID = &id
	}

	resp, err := h.forecasts.DemandForecast(c.Request.Context(), tenantID, query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ForecastSeries godoc
// @ID           postForecastSeries
// @Summary      Forecast a posted series
// @Tags         forecasts
// @Accept       json
// @Produce      json
// @Param        request body forecastapp.SeriesRequest true "Historical period totals"
// @Success      200 {object} APIResponse[forecastapp.ForecastResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /forecasts/series [post]
func (h *ForecastHandler) ForecastSeries(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req forecastapp.SeriesRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.forecasts.ForecastSeries(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordSale godoc
// @ID           createTicketSale
// @Summary      Record a ticket sale
// @Tags         ticket-sales
// @Accept       json
// @Produce      json
// @Param        request body forecastapp.RecordSaleRequest true "Sale"
// @Success      201 {object} APIResponse[forecastapp.TicketSaleResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /ticket-sales [post]
func (h *ForecastHandler) RecordSale(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req forecastapp.RecordSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.sales.Record(c.Request.Context(), tenantID, getUserID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListSales godoc
// @ID           listTicketSales
// @Summary      List ticket sales
// @Tags         ticket-sales
// @Produce      json
// @Param        event_id  query string false "Event ID" format(uuid)
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} ListResponse[forecastapp.TicketSaleResponse]
// @Security     BearerAuth
// @Router       /ticket-sales [get]
func (h *ForecastHandler) ListSales(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	filter := forecastapp.TicketSaleListFilter{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if raw := c.Query("event_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid event_id format")
			return
		}
		filter.EventID = &id
	}

	sales, total, err := h.sales.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, sales, total, filter.Page, filter.PageSize)
}

// ImportSales godoc
// @ID           importTicketSales
// @Summary      Import ticket sales from CSV
// @Description  Columns event_id, quantity, amount, sold_at and optional channel. Any row error rejects the whole file.
// @Tags         ticket-sales
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV file"
// @Success      201 {object} APIResponse[forecastapp.ImportResult]
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /ticket-sales/import [post]
func (h *ForecastHandler) ImportSales(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportUploadBytes)
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Upload exceeds maximum allowed size")
			return
		}
		h.BadRequest(c, "A CSV file is required in the file field")
		return
	}
	file, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.sales.Import(c.Request.Context(), tenantID, getUserID(c), file)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	if result.ErrorCount > 0 {
		details := make([]dto.ValidationDetail, len(result.Errors))
		for i, e := range result.Errors {
			details[i] = dto.ValidationDetail{Field: e.Column, Message: e.Message, Row: e.Row, Value: e.Value}
		}
		h.ValidationError(c, importErrorMessage(result.ErrorCount), details)
		return
	}
	h.Created(c, result)
}

// importErrorMessage counts cell errors; one row can contribute several
func importErrorMessage(n int) string {
	noun := "errors"
	if n == 1 {
		noun = "error"
	}
	return strconv.Itoa(n) + " validation " + noun + " in upload; nothing was imported"
}
