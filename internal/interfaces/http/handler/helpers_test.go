package handler

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	assetapp "github.com/ghxstship/backend/internal/application/asset"
	forecastapp "github.com/ghxstship/backend/internal/application/forecast"
	paymentapp "github.com/ghxstship/backend/internal/application/payment"
	procurementapp "github.com/ghxstship/backend/internal/application/procurement"
	projectapp "github.com/ghxstship/backend/internal/application/project"
	riskapp "github.com/ghxstship/backend/internal/application/risk"
	"github.com/ghxstship/backend/internal/domain/payment"
	"github.com/ghxstship/backend/internal/infrastructure/cache"
	paymentinfra "github.com/ghxstship/backend/internal/infrastructure/payment"
	"github.com/ghxstship/backend/internal/infrastructure/persistence"
	"github.com/ghxstship/backend/internal/infrastructure/storage"
	"github.com/ghxstship/backend/internal/interfaces/http/middleware"
	"github.com/ghxstship/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

const testSignature = "t=1,v1=good"

// fakeGateway stands in for Stripe. ParseWebhook treats the payload as
// "<event id>|<type>|<intent id>".
type fakeGateway struct {
	mu      sync.Mutex
	intents int
}

func (g *fakeGateway) CreateIntent(_ context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.intents++
	return &payment.Intent{ID: "pi_" + req.PaymentID.String(), Status: "requires_payment_method", ClientSecret: "secret_" + req.IdempotencyKey}, nil
}

func (g *fakeGateway) CancelIntent(context.Context, string) error { return nil }

func (g *fakeGateway) ParseWebhook(payload []byte, signature string) (*payment.GatewayEvent, error) {
	if signature != testSignature {
		return nil, paymentinfra.ErrInvalidSignature
	}
	parts := strings.Split(string(payload), "|")
	if len(parts) != 3 {
		return nil, paymentinfra.ErrInvalidSignature
	}
	return &payment.GatewayEvent{ID: parts[0], Type: payment.GatewayEventType(parts[1]), IntentID: parts[2]}, nil
}

// fakeStorage presigns deterministic URLs and reports keys in uploaded as
// present
type fakeStorage struct {
	uploaded map[string]bool
}

func (s *fakeStorage) GenerateUploadURL(_ context.Context, key, _ string, ttl time.Duration) (string, time.Time, error) {
	return "https://certs.test/" + key + "?put", time.Now().Add(ttl), nil
}

func (s *fakeStorage) GenerateDownloadURL(_ context.Context, key string, ttl time.Duration) (string, time.Time, error) {
	return "https://certs.test/" + key + "?get", time.Now().Add(ttl), nil
}

func (s *fakeStorage) ObjectExists(_ context.Context, key string) (bool, error) {
	return s.uploaded[key], nil
}

// testEnv mounts every handler on real services over SQLite
type testEnv struct {
	db      *gorm.DB
	engine  *gin.Engine
	tenant  uuid.UUID
	user    uuid.UUID
	gateway *fakeGateway
	storage *fakeStorage
	events  *testutil.RecordingPublisher
}

type envOption func(*envConfig)

type envConfig struct {
	storage   assetapp.CertificateStorage
	anonymous bool
}

func withUnconfiguredStorage() envOption {
	return func(c *envConfig) { c.storage = storage.Unconfigured{} }
}

// anonymous mounts handlers with no tenant bound
func anonymous() envOption {
	return func(c *envConfig) { c.anonymous = true }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	env := &testEnv{
		db:      testutil.NewSQLiteDB(t),
		tenant:  testutil.TestTenantID(),
		user:    testutil.TestUserID(),
		gateway: &fakeGateway{},
		storage: &fakeStorage{uploaded: map[string]bool{}},
		events:  testutil.NewRecordingPublisher(),
	}
	cfg := envConfig{storage: env.storage}
	for _, opt := range opts {
		opt(&cfg)
	}

	store := cache.NewInMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	sales := persistence.NewGormTicketSaleRepository(env.db)
	projects := persistence.NewGormProjectRepository(env.db)
	schedule := persistence.NewGormScheduleRepository(env.db)
	crew := persistence.NewGormCrewRepository(env.db)
	invoices := persistence.NewGormVendorInvoiceRepository(env.db)

	forecasts := forecastapp.NewForecastService(sales, store)
	saleSvc := forecastapp.NewTicketSaleService(sales, forecasts, nil)
	assetSvc := assetapp.NewAssetService(
		persistence.NewGormAssetRepository(env.db),
		persistence.NewGormPolicyRepository(env.db),
		persistence.NewGormCoverageRepository(env.db),
		cfg.storage, time.Minute)
	paymentSvc := paymentapp.NewPaymentService(persistence.NewGormPaymentRepository(env.db), invoices, env.gateway, store, nil)
	procurementSvc := procurementapp.NewProcurementService(
		persistence.NewGormPurchaseOrderRepository(env.db),
		persistence.NewGormGoodsReceiptRepository(env.db),
		invoices,
		procurementapp.ToleranceFromFractions(0, 0.02), nil)
	projectSvc := projectapp.NewProjectService(projects, schedule, crew)
	riskSvc := riskapp.NewRiskService(projects, schedule, crew,
		persistence.NewGormAssessmentRepository(env.db), env.events, nil)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	webhook := NewStripeWebhookHandler(paymentSvc)
	engine.POST("/api/v1/webhooks/stripe", webhook.HandleStripeWebhook)

	api := engine.Group("/api/v1")
	if !cfg.anonymous {
		// read per request so a test can switch tenants
		api.Use(func(c *gin.Context) {
			testutil.AsCaller(env.tenant, env.user)(c)
		})
	}

	fh := NewForecastHandler(forecasts, saleSvc)
	api.GET("/forecasts/demand", fh.DemandForecast)
	api.POST("/forecasts/series", fh.ForecastSeries)
	api.POST("/ticket-sales", fh.RecordSale)
	api.GET("/ticket-sales", fh.ListSales)
	api.POST("/ticket-sales/import", fh.ImportSales)

	ph := NewProjectHandler(projectSvc)
	rh := NewRiskHandler(riskSvc)
	api.POST("/projects", ph.Create)
	api.GET("/projects", ph.List)
	api.GET("/projects/:id", ph.GetByID)
	api.PATCH("/projects/:id", ph.Update)
	api.DELETE("/projects/:id", ph.Delete)
	api.POST("/projects/:id/spend", ph.RecordSpend)
	api.POST("/projects/:id/schedule", ph.AddScheduleItem)
	api.DELETE("/projects/:id/schedule/:item_id", ph.RemoveScheduleItem)
	api.POST("/projects/:id/crew", ph.AddCrew)
	api.PATCH("/projects/:id/crew/:assignment_id", ph.UpdateCrewStatus)
	api.POST("/projects/:id/risk-assessments", rh.Assess)
	api.GET("/projects/:id/risk-assessments", rh.History)
	api.POST("/risk/evaluate", rh.Evaluate)

	ah := NewAssetHandler(assetSvc)
	api.POST("/assets", ah.CreateAsset)
	api.GET("/assets", ah.ListAssets)
	api.GET("/assets/:id", ah.GetAsset)
	api.POST("/assets/:id/retire", ah.RetireAsset)
	api.POST("/assets/:id/coverages", ah.AttachCoverage)
	api.GET("/assets/:id/coverages", ah.ListCoverages)
	api.DELETE("/assets/:id/coverages/:policy_id", ah.DetachCoverage)
	api.POST("/insurance/policies", ah.CreatePolicy)
	api.GET("/insurance/policies", ah.ListPolicies)
	api.GET("/insurance/policies/:id", ah.GetPolicy)
	api.POST("/insurance/policies/:id/certificate/upload-url", ah.CertificateUploadURL)
	api.PUT("/insurance/policies/:id/certificate", ah.ConfirmCertificate)
	api.GET("/insurance/policies/:id/certificate", ah.CertificateDownloadURL)

	pay := NewPaymentHandler(paymentSvc)
	api.POST("/payments", pay.Create)
	api.GET("/payments", pay.List)
	api.GET("/payments/:id", pay.GetByID)
	api.POST("/payments/:id/void", pay.Void)

	proc := NewProcurementHandler(procurementSvc)
	api.POST("/procurement/purchase-orders", proc.CreatePurchaseOrder)
	api.GET("/procurement/purchase-orders", proc.ListPurchaseOrders)
	api.GET("/procurement/purchase-orders/:id", proc.GetPurchaseOrder)
	api.POST("/procurement/purchase-orders/:id/receipts", proc.RecordReceipt)
	api.POST("/procurement/purchase-orders/:id/invoices", proc.RecordInvoice)
	api.GET("/procurement/invoices/:id", proc.GetInvoice)
	api.POST("/procurement/invoices/:id/match", proc.Match)

	env.engine = engine
	return env
}
