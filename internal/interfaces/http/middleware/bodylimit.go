package middleware

import (
	"net/http"

	"github.com/ghxstship/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RouteLimit overrides the body cap for one route pattern, as reported by
// gin's FullPath (for example "/api/v1/webhooks/stripe").
type RouteLimit struct {
	Route    string
	MaxBytes int64
}

// BodyLimit answers 413 when the declared Content-Length is over the cap and
// wraps the body so chunked uploads fail on read once they pass it.
func BodyLimit(maxBytes int64, overrides ...RouteLimit) gin.HandlerFunc {
	limits := make(map[string]int64, len(overrides))
	for _, o := range overrides {
		limits[o.Route] = o.MaxBytes
	}

	return func(c *gin.Context) {
		limit := maxBytes
		if l, ok := limits[c.FullPath()]; ok {
			limit = l
		}
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size", GetRequestID(c)))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
