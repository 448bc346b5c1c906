package router

import (
	"github.com/ghxstship/backend/internal/interfaces/http/handler"
)

// Handlers bundles every domain handler the API mounts
type Handlers struct {
	Forecast    *handler.ForecastHandler
	Project     *handler.ProjectHandler
	Risk        *handler.RiskHandler
	Asset       *handler.AssetHandler
	Payment     *handler.PaymentHandler
	Procurement *handler.ProcurementHandler
	Webhook     *handler.StripeWebhookHandler
}

// DomainGroups builds the /api/v1 route table
func DomainGroups(h Handlers) []RouteRegistrar {
	forecasts := NewDomainGroup("forecasts", "/forecasts").
		GET("/demand", h.Forecast.DemandForecast).
		POST("/series", h.Forecast.ForecastSeries)

	sales := NewDomainGroup("ticket-sales", "/ticket-sales").
		POST("", h.Forecast.RecordSale).
		GET("", h.Forecast.ListSales).
		POST("/import", h.Forecast.ImportSales)

	projects := NewDomainGroup("projects", "/projects")
	projects.
		POST("", h.Project.Create).
		GET("", h.Project.List).
		GET("/:id", h.Project.GetByID).
		PATCH("/:id", h.Project.Update).
		DELETE("/:id", h.Project.Delete).
		POST("/:id/spend", h.Project.RecordSpend).
		POST("/:id/schedule", h.Project.AddScheduleItem).
		DELETE("/:id/schedule/:item_id", h.Project.RemoveScheduleItem).
		POST("/:id/crew", h.Project.AddCrew).
		PATCH("/:id/crew/:assignment_id", h.Project.UpdateCrewStatus).
		POST("/:id/risk-assessments", h.Risk.Assess).
		GET("/:id/risk-assessments", h.Risk.History)

	risk := NewDomainGroup("risk", "/risk").
		POST("/evaluate", h.Risk.Evaluate)

	assets := NewDomainGroup("assets", "/assets").
		POST("", h.Asset.CreateAsset).
		GET("", h.Asset.ListAssets).
		GET("/:id", h.Asset.GetAsset).
		POST("/:id/retire", h.Asset.RetireAsset).
		POST("/:id/coverages", h.Asset.AttachCoverage).
		GET("/:id/coverages", h.Asset.ListCoverages).
		DELETE("/:id/coverages/:policy_id", h.Asset.DetachCoverage)

	insurance := NewDomainGroup("insurance", "/insurance")
	insurance.Group("policies", "/policies").
		POST("", h.Asset.CreatePolicy).
		GET("", h.Asset.ListPolicies).
		GET("/:id", h.Asset.GetPolicy).
		POST("/:id/certificate/upload-url", h.Asset.CertificateUploadURL).
		PUT("/:id/certificate", h.Asset.ConfirmCertificate).
		GET("/:id/certificate", h.Asset.CertificateDownloadURL)

	payments := NewDomainGroup("payments", "/payments").
		POST("", h.Payment.Create).
		GET("", h.Payment.List).
		GET("/:id", h.Payment.GetByID).
		POST("/:id/void", h.Payment.Void)

	procurement := NewDomainGroup("procurement", "/procurement")
	procurement.Group("purchase-orders", "/purchase-orders").
		POST("", h.Procurement.CreatePurchaseOrder).
		GET("", h.Procurement.ListPurchaseOrders).
		GET("/:id", h.Procurement.GetPurchaseOrder).
		POST("/:id/receipts", h.Procurement.RecordReceipt).
		POST("/:id/invoices", h.Procurement.RecordInvoice)
	procurement.Group("invoices", "/invoices").
		GET("/:id", h.Procurement.GetInvoice).
		POST("/:id/match", h.Procurement.Match)

	webhooks := NewDomainGroup("webhooks", "/webhooks").
		POST("/stripe", h.Webhook.HandleStripeWebhook)

	return []RouteRegistrar{forecasts, sales, projects, risk, assets, insurance, payments, procurement, webhooks}
}
