package middleware

import (
	"errors"
	"net/http"

	"github.com/ghxstship/backend/internal/infrastructure/logger"
	"github.com/ghxstship/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// TenantIDKey holds the caller's tenant id as a string. logger.GinMiddleware
	// reads the same key.
	TenantIDKey     = "tenant_id"
	TenantHeaderKey = "X-Tenant-ID"
)

// ErrNoTenant is returned when a request reaches a handler without a tenant
var ErrNoTenant = errors.New("no tenant bound to request")

// HeaderTenantConfig configures the development tenant middleware
type HeaderTenantConfig struct {
	SkipPaths        []string
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// HeaderTenant binds the tenant from X-Tenant-ID. It is only installed when
// JWT auth is disabled; with JWT enabled the header is ignored and the
// token's claim is the sole source.
func HeaderTenant(cfg HeaderTenantConfig) gin.HandlerFunc {
	if cfg.Logger != nil {
		cfg.Logger.Warn("JWT auth disabled, trusting X-Tenant-ID header")
	}
	return func(c *gin.Context) {
		if skipPath(c.Request.URL.Path, cfg.SkipPaths, cfg.SkipPathPrefixes) {
			c.Next()
			return
		}

		raw := c.GetHeader(TenantHeaderKey)
		if _, err := uuid.Parse(raw); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "A valid "+TenantHeaderKey+" header is required", GetRequestID(c)))
			return
		}

		c.Set(TenantIDKey, raw)
		c.Request = c.Request.WithContext(logger.WithTenantID(c.Request.Context(), raw))
		c.Next()
	}
}

// TenantID returns the tenant bound by JWTAuthMiddleware or HeaderTenant
func TenantID(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetString(TenantIDKey)
	if raw == "" {
		return uuid.Nil, ErrNoTenant
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrNoTenant
	}
	return id, nil
}
