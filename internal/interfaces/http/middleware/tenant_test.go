package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderTenant(t *testing.T) {
	router := gin.New()
	router.Use(HeaderTenant(HeaderTenantConfig{SkipPaths: []string{"/health"}}))
	router.GET("/x", func(c *gin.Context) {
		id, err := TenantID(c)
		require.NoError(t, err)
		c.String(http.StatusOK, id.String())
	})
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	tenant := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(TenantHeaderKey, tenant)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tenant, w.Body.String())

	for _, header := range []string{"", "acme"} {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(TenantHeaderKey, header)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTenantID_Unbound(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := TenantID(c)
	assert.ErrorIs(t, err, ErrNoTenant)

	c.Set(TenantIDKey, "not-a-uuid")
	_, err = TenantID(c)
	assert.ErrorIs(t, err, ErrNoTenant)
}
