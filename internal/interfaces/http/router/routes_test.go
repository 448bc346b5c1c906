package router

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestDomainGroups_RouteTable(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Register(DomainGroups(Handlers{})...).Setup()

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /api/v1/forecasts/demand",
		"POST /api/v1/forecasts/series",
		"POST /api/v1/ticket-sales",
		"GET /api/v1/ticket-sales",
		"POST /api/v1/ticket-sales/import",
		"POST /api/v1/projects",
		"GET /api/v1/projects/:id",
		"PATCH /api/v1/projects/:id",
		"DELETE /api/v1/projects/:id",
		"POST /api/v1/projects/:id/spend",
		"POST /api/v1/projects/:id/schedule",
		"DELETE /api/v1/projects/:id/schedule/:item_id",
		"POST /api/v1/projects/:id/crew",
		"PATCH /api/v1/projects/:id/crew/:assignment_id",
		"POST /api/v1/projects/:id/risk-assessments",
		"GET /api/v1/projects/:id/risk-assessments",
		"POST /api/v1/risk/evaluate",
		"POST /api/v1/assets/:id/coverages",
		"DELETE /api/v1/assets/:id/coverages/:policy_id",
		"POST /api/v1/assets/:id/retire",
		"POST /api/v1/insurance/policies",
		"POST /api/v1/insurance/policies/:id/certificate/upload-url",
		"PUT /api/v1/insurance/policies/:id/certificate",
		"GET /api/v1/insurance/policies/:id/certificate",
		"POST /api/v1/payments",
		"POST /api/v1/payments/:id/void",
		"POST /api/v1/procurement/purchase-orders",
		"POST /api/v1/procurement/purchase-orders/:id/receipts",
		"POST /api/v1/procurement/purchase-orders/:id/invoices",
		"GET /api/v1/procurement/invoices/:id",
		"POST /api/v1/procurement/invoices/:id/match",
		"POST /api/v1/webhooks/stripe",
	}
	for _, r := range expected {
		assert.True(t, registered[r], "missing route %s", r)
	}
}
