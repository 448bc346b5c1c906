package handler

import (
	assetapp "github.com/ghxstship/backend/internal/application/asset"
	"github.com/gin-gonic/gin"
)

// AssetHandler handles assets, insurance policies and coverage
type AssetHandler struct {
	BaseHandler
	assets *assetapp.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assets *assetapp.AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// CreateAsset godoc
// @ID           createAsset
// @Summary      Register an asset
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        request body assetapp.CreateAssetRequest true "Asset"
// @Success      201 {object} APIResponse[assetapp.AssetResponse]
// @Failure      409 {object} ErrorResponse "Tag already used"
// @Security     BearerAuth
// @Router       /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req assetapp.CreateAssetRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.assets.CreateAsset(c.Request.Context(), tenantID, getUserID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetAsset godoc
// @ID           getAssetById
// @Summary      Get an asset
// @Tags         assets
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Success      200 {object} APIResponse[assetapp.AssetResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.assets.GetAsset(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListAssets godoc
// @ID           listAssets
// @Summary      List assets
// @Tags         assets
// @Produce      json
// @Param        search    query string false "Search name, tag or serial"
// @Param        status    query string false "Status" Enums(active, retired)
// @Param        category  query string false "Category"
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} ListResponse[assetapp.AssetResponse]
// @Security     BearerAuth
// @Router       /assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter assetapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	defaultPaging(&filter.Page, &filter.PageSize)

	items, total, err := h.assets.ListAssets(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// RetireAsset godoc
// @ID           retireAsset
// @Summary      Retire an asset
// @Tags         assets
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Success      200 {object} APIResponse[assetapp.AssetResponse]
// @Failure      422 {object} ErrorResponse "Already retired"
// @Security     BearerAuth
// @Router       /assets/{id}/retire [post]
func (h *AssetHandler) RetireAsset(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.assets.RetireAsset(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// AttachCoverage godoc
// @ID           attachAssetCoverage
// @Summary      Cover an asset under a policy
// @Description  Attaching the same asset to the same policy twice answers 409
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id      path string                          true "Asset ID" format(uuid)
// @Param        request body assetapp.AttachCoverageRequest true "Coverage"
// @Success      201 {object} APIResponse[assetapp.CoverageResponse]
// @Failure      409 {object} ErrorResponse "Already covered"
// @Failure      422 {object} ErrorResponse "Policy not in force"
// @Security     BearerAuth
// @Router       /assets/{id}/coverages [post]
func (h *AssetHandler) AttachCoverage(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req assetapp.AttachCoverageRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.assets.AttachCoverage(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListCoverages godoc
// @ID           listAssetCoverages
// @Summary      List the policies covering an asset
// @Tags         assets
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Success      200 {object} ListResponse[assetapp.CoverageResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id}/coverages [get]
func (h *AssetHandler) ListCoverages(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.assets.ListCoverages(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// DetachCoverage godoc
// @ID           detachAssetCoverage
// @Summary      Remove an asset from a policy
// @Tags         assets
// @Param        id        path string true "Asset ID" format(uuid)
// @Param        policy_id path string true "Policy ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assets/{id}/coverages/{policy_id} [delete]
func (h *AssetHandler) DetachCoverage(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	policyID, ok := h.pathUUID(c, "policy_id")
	if !ok {
		return
	}

	if err := h.assets.DetachCoverage(c.Request.Context(), tenantID, id, policyID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// CreatePolicy godoc
// @ID           createInsurancePolicy
// @Summary      Register an insurance policy
// @Tags         insurance
// @Accept       json
// @Produce      json
// @Param        request body assetapp.CreatePolicyRequest true "Policy"
// @Success      201 {object} APIResponse[assetapp.PolicyResponse]
// @Failure      409 {object} ErrorResponse "Policy number already used"
// @Security     BearerAuth
// @Router       /insurance/policies [post]
func (h *AssetHandler) CreatePolicy(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req assetapp.CreatePolicyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.assets.CreatePolicy(c.Request.Context(), tenantID, getUserID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetPolicy godoc
// @ID           getInsurancePolicyById
// @Summary      Get an insurance policy
// @Tags         insurance
// @Produce      json
// @Param        id path string true "Policy ID" format(uuid)
// @Success      200 {object} APIResponse[assetapp.PolicyResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /insurance/policies/{id} [get]
func (h *AssetHandler) GetPolicy(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.assets.GetPolicy(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListPolicies godoc
// @ID           listInsurancePolicies
// @Summary      List insurance policies
// @Tags         insurance
// @Produce      json
// @Param        search    query string false "Search number or carrier"
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} ListResponse[assetapp.PolicyResponse]
// @Security     BearerAuth
// @Router       /insurance/policies [get]
func (h *AssetHandler) ListPolicies(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter assetapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	defaultPaging(&filter.Page, &filter.PageSize)

	items, total, err := h.assets.ListPolicies(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// CertificateUploadURL godoc
// @ID           createCertificateUploadUrl
// @Summary      Presign an upload of the certificate of insurance
// @Tags         insurance
// @Accept       json
// @Produce      json
// @Param        id      path string                             true "Policy ID" format(uuid)
// @Param        request body assetapp.CertificateUploadRequest true "File"
// @Success      200 {object} APIResponse[assetapp.PresignedURLResponse]
// @Failure      422 {object} ErrorResponse "Storage not configured"
// @Security     BearerAuth
// @Router       /insurance/policies/{id}/certificate/upload-url [post]
func (h *AssetHandler) CertificateUploadURL(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req assetapp.CertificateUploadRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.assets.CertificateUploadURL(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ConfirmCertificate godoc
// @ID           confirmCertificate
// @Summary      Attach an uploaded certificate to its policy
// @Tags         insurance
// @Accept       json
// @Produce      json
// @Param        id      path string                              true "Policy ID" format(uuid)
// @Param        request body assetapp.ConfirmCertificateRequest true "Uploaded object key"
// @Success      200 {object} APIResponse[assetapp.PolicyResponse]
// @Failure      422 {object} ErrorResponse "Object not uploaded"
// @Security     BearerAuth
// @Router       /insurance/policies/{id}/certificate [put]
func (h *AssetHandler) ConfirmCertificate(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req assetapp.ConfirmCertificateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.assets.ConfirmCertificate(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// CertificateDownloadURL godoc
// @ID           getCertificateDownloadUrl
// @Summary      Presign a download of the certificate of insurance
// @Tags         insurance
// @Produce      json
// @Param        id path string true "Policy ID" format(uuid)
// @Success      200 {object} APIResponse[assetapp.PresignedURLResponse]
// @Failure      404 {object} ErrorResponse "No certificate"
// @Security     BearerAuth
// @Router       /insurance/policies/{id}/certificate [get]
func (h *AssetHandler) CertificateDownloadURL(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.assets.CertificateDownloadURL(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
