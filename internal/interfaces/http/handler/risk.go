package handler

import (
	riskapp "github.com/ghxstship/backend/internal/application/risk"
	"github.com/gin-gonic/gin"
)

// RiskHandler scores projects and ad-hoc attributes
type RiskHandler struct {
	BaseHandler
	risks *riskapp.RiskService
}

// NewRiskHandler creates a new RiskHandler
func NewRiskHandler(risks *riskapp.RiskService) *RiskHandler {
	return &RiskHandler{risks: risks}
}

// Assess godoc
// @ID           assessProjectRisk
// @Summary      Assess a project's risk
// @Description  Runs the rules against the project's schedule, crew and budget and stores the snapshot
// @Tags         risk
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Success      201 {object} APIResponse[riskapp.AssessmentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{id}/risk-assessments [post]
func (h *RiskHandler) Assess(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.risks.AssessProject(c.Request.Context(), tenantID, id, getUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// History godoc
// @ID           listProjectRiskAssessments
// @Summary      List a project's assessments, newest first
// @Tags         risk
// @Produce      json
// @Param        id        path  string true  "Project ID" format(uuid)
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} ListResponse[riskapp.AssessmentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{id}/risk-assessments [get]
func (h *RiskHandler) History(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	page, pageSize := queryInt(c, "page", 1), queryInt(c, "page_size", 20)

	items, total, err := h.risks.History(c.Request.Context(), tenantID, id, page, pageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, page, pageSize)
}

// Evaluate godoc
// @ID           evaluateRisk
// @Summary      Score posted project attributes without storing them
// @Tags         risk
// @Accept       json
// @Produce      json
// @Param        request body riskapp.EvaluateRequest true "Attributes"
// @Success      200 {object} APIResponse[riskapp.EvaluationResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /risk/evaluate [post]
func (h *RiskHandler) Evaluate(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req riskapp.EvaluateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.risks.Evaluate(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
