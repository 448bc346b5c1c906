package handler

import (
	projectapp "github.com/ghxstship/backend/internal/application/project"
	"github.com/gin-gonic/gin"
)

// ProjectHandler handles projects with their schedules, crews and spend
type ProjectHandler struct {
	BaseHandler
	projects *projectapp.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projects *projectapp.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// Create godoc
// @ID           createProject
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        request body projectapp.CreateProjectRequest true "Project"
// @Success      201 {object} APIResponse[projectapp.ProjectResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req projectapp.CreateProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.projects.Create(c.Request.Context(), tenantID, getUserID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID godoc
// @ID           getProjectById
// @Summary      Get a project with its schedule and crew
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Success      200 {object} APIResponse[projectapp.ProjectDetailResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.projects.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listProjects
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Param        search    query string false "Search name or code"
// @Param        status    query string false "Status" Enums(planning, active, completed, cancelled)
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} ListResponse[projectapp.ProjectResponse]
// @Security     BearerAuth
// @Router       /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter projectapp.ProjectListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	defaultPaging(&filter.Page, &filter.PageSize)

	projects, total, err := h.projects.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, projects, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateProject
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id      path string                          true "Project ID" format(uuid)
// @Param        request body projectapp.UpdateProjectRequest true "Changes"
// @Success      200 {object} APIResponse[projectapp.ProjectResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{id} [patch]
func (h *ProjectHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req projectapp.UpdateProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.projects.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteProject
// @Summary      Delete a project
// @Tags         projects
// @Param        id path string true "Project ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RecordSpend godoc
// @ID           recordProjectSpend
// @Summary      Add to a project's spend
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id      path string                        true "Project ID" format(uuid)
// @Param        request body projectapp.RecordSpendRequest true "Amount"
// @Success      200 {object} APIResponse[projectapp.ProjectResponse]
// @Failure      409 {object} ErrorResponse "Concurrent update"
// @Security     BearerAuth
// @Router       /projects/{id}/spend [post]
func (h *ProjectHandler) RecordSpend(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req projectapp.RecordSpendRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.projects.RecordSpend(c.Request.Context(), tenantID, id, req.Amount)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddScheduleItem godoc
// @ID           addProjectScheduleItem
// @Summary      Add a schedule item
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id      path string                            true "Project ID" format(uuid)
// @Param        request body projectapp.AddScheduleItemRequest true "Schedule item"
// @Success      201 {object} APIResponse[projectapp.ScheduleItemResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{id}/schedule [post]
func (h *ProjectHandler) AddScheduleItem(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req projectapp.AddScheduleItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.projects.AddScheduleItem(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// RemoveScheduleItem godoc
// @ID           removeProjectScheduleItem
// @Summary      Remove a schedule item
// @Tags         projects
// @Param        id      path string true "Project ID" format(uuid)
// @Param        item_id path string true "Schedule item ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{id}/schedule/{item_id} [delete]
func (h *ProjectHandler) RemoveScheduleItem(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.pathUUID(c, "item_id")
	if !ok {
		return
	}

	if err := h.projects.RemoveScheduleItem(c.Request.Context(), tenantID, id, itemID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// AddCrew godoc
// @ID           addProjectCrew
// @Summary      Assign a crew member
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id      path string                    true "Project ID" format(uuid)
// @Param        request body projectapp.AddCrewRequest true "Assignment"
// @Success      201 {object} APIResponse[projectapp.CrewAssignmentResponse]
// @Security     BearerAuth
// @Router       /projects/{id}/crew [post]
func (h *ProjectHandler) AddCrew(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req projectapp.AddCrewRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.projects.AddCrewAssignment(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateCrewStatus godoc
// @ID           updateProjectCrewStatus
// @Summary      Confirm or decline a crew assignment
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id            path string                             true "Project ID" format(uuid)
// @Param        assignment_id path string                             true "Assignment ID" format(uuid)
// @Param        request       body projectapp.UpdateCrewStatusRequest true "Status"
// @Success      200 {object} APIResponse[projectapp.CrewAssignmentResponse]
// @Security     BearerAuth
// @Router       /projects/{id}/crew/{assignment_id} [patch]
func (h *ProjectHandler) UpdateCrewStatus(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	assignmentID, ok := h.pathUUID(c, "assignment_id")
	if !ok {
		return
	}
	var req projectapp.UpdateCrewStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.projects.UpdateCrewStatus(c.Request.Context(), tenantID, id, assignmentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
