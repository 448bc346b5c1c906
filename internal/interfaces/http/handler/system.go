package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/ghxstship/backend/internal/infrastructure/logger"
	"github.com/ghxstship/backend/internal/infrastructure/persistence"
	"github.com/ghxstship/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const readinessTimeout = 2 * time.Second

// DatabaseProbe is the slice of the database readiness needs
type DatabaseProbe interface {
	PingContext(ctx context.Context) error
	Stats() (persistence.PoolStats, error)
}

// SystemHandler serves probes and build information
type SystemHandler struct {
	BaseHandler
	db        DatabaseProbe
	version   string
	startTime time.Time
	modules   []string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db DatabaseProbe, version string) *SystemHandler {
	return &SystemHandler{db: db, version: version, startTime: time.Now()}
}

// SetModules records the mounted API modules reported by /system/info
func (h *SystemHandler) SetModules(modules []string) {
	h.modules = modules
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string   `json:"name" example:"GHXSTSHIP API"`
	Version   string   `json:"version" example:"1.0.0"`
	GoVersion string   `json:"go_version" example:"go1.25.5"`
	Uptime    string   `json:"uptime" example:"1h30m45s"`
	Modules   []string `json:"modules" example:"projects,payments"`
}

// ReadinessResponse reports dependency health
type ReadinessResponse struct {
	Status   string                `json:"status" example:"ready"`
	Time     string                `json:"time"`
	Database string                `json:"database" example:"ok"`
	Pool     *persistence.PoolStats `json:"pool,omitempty"`
}

// Health godoc
// @ID           getHealth
// @Summary      Liveness probe
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready godoc
// @ID           getReady
// @Summary      Readiness probe
// @Description  Pings the database and reports connection pool usage
// @Tags         system
// @Produce      json
// @Success      200 {object} ReadinessResponse
// @Failure      503 {object} ReadinessResponse
// @Router       /ready [get]
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	resp := ReadinessResponse{Status: "ready", Time: time.Now().UTC().Format(time.RFC3339), Database: "ok"}
	if err := h.db.PingContext(ctx); err != nil {
		logger.FromContext(c.Request.Context()).Warn("Readiness check failed", zap.Error(err))
		resp.Status, resp.Database = "unavailable", "error"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	if stats, err := h.db.Stats(); err == nil {
		resp.Pool = &stats
	}
	c.JSON(http.StatusOK, resp)
}

// GetSystemInfo godoc
// @ID           getSystemInfo
// @Summary      Get system information
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Security     BearerAuth
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(SystemInfoResponse{
		Name:      "GHXSTSHIP API",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Modules:   h.modules,
	}))
}
