// Package docs holds the OpenAPI document served under /swagger.
// Regenerate it from the handler annotations with go generate ./cmd/server.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}",
        "contact": {"name": "GHXSTSHIP Engineering"},
        "license": {"name": "Proprietary"}
    },
    "servers": [{"url": "{{.BasePath}}"}],
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "forecasts"},
        {"name": "ticket-sales"},
        {"name": "projects"},
        {"name": "risk"},
        {"name": "assets"},
        {"name": "insurance"},
        {"name": "payments"},
        {"name": "procurement"},
        {"name": "webhooks"},
        {"name": "system"}
    ],
    "paths": {
        "/forecasts/demand": {"get": {"operationId": "getDemandForecast", "tags": ["forecasts"], "summary": "Forecast ticket demand"}},
        "/forecasts/series": {"post": {"operationId": "postForecastSeries", "tags": ["forecasts"], "summary": "Forecast a posted series"}},
        "/ticket-sales": {
            "get": {"operationId": "listTicketSales", "tags": ["ticket-sales"], "summary": "List ticket sales"},
            "post": {"operationId": "createTicketSale", "tags": ["ticket-sales"], "summary": "Record a ticket sale"}
        },
        "/ticket-sales/import": {"post": {"operationId": "importTicketSales", "tags": ["ticket-sales"], "summary": "Import ticket sales from CSV"}},
        "/projects": {
            "get": {"operationId": "listProjects", "tags": ["projects"], "summary": "List projects"},
            "post": {"operationId": "createProject", "tags": ["projects"], "summary": "Create a project"}
        },
        "/risk/evaluate": {"post": {"operationId": "evaluateRisk", "tags": ["risk"], "summary": "Score a project snapshot"}},
        "/assets": {
            "get": {"operationId": "listAssets", "tags": ["assets"], "summary": "List assets"},
            "post": {"operationId": "createAsset", "tags": ["assets"], "summary": "Register an asset"}
        },
        "/insurance/policies": {
            "get": {"operationId": "listInsurancePolicies", "tags": ["insurance"], "summary": "List insurance policies"},
            "post": {"operationId": "createInsurancePolicy", "tags": ["insurance"], "summary": "Create an insurance policy"}
        },
        "/payments": {
            "get": {"operationId": "listPayments", "tags": ["payments"], "summary": "List vendor payments"},
            "post": {"operationId": "createPayment", "tags": ["payments"], "summary": "Pay a vendor"}
        },
        "/procurement/purchase-orders": {
            "get": {"operationId": "listPurchaseOrders", "tags": ["procurement"], "summary": "List purchase orders"},
            "post": {"operationId": "createPurchaseOrder", "tags": ["procurement"], "summary": "Create a purchase order"}
        },
        "/procurement/invoices/{id}/match": {"post": {"operationId": "matchVendorInvoice", "tags": ["procurement"], "summary": "Run the three-way match"}},
        "/webhooks/stripe": {"post": {"operationId": "handleStripeWebhook", "tags": ["webhooks"], "summary": "Receive Stripe events", "security": []}},
        "/system/info": {"get": {"operationId": "getSystemInfo", "tags": ["system"], "summary": "Build and runtime information"}}
    },
    "components": {
        "securitySchemes": {
            "BearerAuth": {
                "type": "apiKey",
                "in": "header",
                "name": "Authorization",
                "description": "Type \"Bearer\" followed by a space and the JWT access token."
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "GHXSTSHIP API",
	Description:      "Production management API for live events: demand forecasting, project risk, asset insurance, vendor payments and procurement.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
