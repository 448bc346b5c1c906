package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghxstship/backend/docs"
	assetapp "github.com/ghxstship/backend/internal/application/asset"
	forecastapp "github.com/ghxstship/backend/internal/application/forecast"
	paymentapp "github.com/ghxstship/backend/internal/application/payment"
	procurementapp "github.com/ghxstship/backend/internal/application/procurement"
	projectapp "github.com/ghxstship/backend/internal/application/project"
	riskapp "github.com/ghxstship/backend/internal/application/risk"
	"github.com/ghxstship/backend/internal/domain/payment"
	"github.com/ghxstship/backend/internal/domain/project"
	"github.com/ghxstship/backend/internal/infrastructure/auth"
	"github.com/ghxstship/backend/internal/infrastructure/cache"
	"github.com/ghxstship/backend/internal/infrastructure/config"
	"github.com/ghxstship/backend/internal/infrastructure/event"
	"github.com/ghxstship/backend/internal/infrastructure/logger"
	"github.com/ghxstship/backend/internal/infrastructure/notification"
	paymentinfra "github.com/ghxstship/backend/internal/infrastructure/payment"
	"github.com/ghxstship/backend/internal/infrastructure/persistence"
	"github.com/ghxstship/backend/internal/infrastructure/scheduler"
	"github.com/ghxstship/backend/internal/infrastructure/storage"
	"github.com/ghxstship/backend/internal/infrastructure/telemetry"
	"github.com/ghxstship/backend/internal/interfaces/http/handler"
	"github.com/ghxstship/backend/internal/interfaces/http/middleware"
	"github.com/ghxstship/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// version is stamped at build time with -ldflags "-X main.version=..."
var version = "dev"

//go:generate swag init -g cmd/server/main.go -o docs --v3.1 -d ../../

//	@title						GHXSTSHIP API
//	@version					1.0
//	@description				Production management API for live events: demand forecasting, project risk, asset insurance, vendor payments and procurement.
//	@contact.name				GHXSTSHIP Engineering
//	@license.name				Proprietary
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT access token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	bootCtx := context.Background()

	// The OTLP log bridge needs a logger to report its own setup, so the
	// process logger is rebuilt with the bridge core once it exists.
	logProvider, err := telemetry.NewLoggerProvider(bootCtx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	if logProvider.IsEnabled() {
		bridged, err := logger.New(logCfg, logProvider.Core(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level)))
		if err != nil {
			log.Fatal("Failed to attach log exporter", zap.Error(err))
		}
		log = bridged
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting GHXSTSHIP backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(bootCtx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(bootCtx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(cfg.Profiling, cfg.Telemetry.ServiceName, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Shared infrastructure
	store, err := cache.NewStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithKeyPrefix("ghx:"),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	).CreateStore()
	if err != nil {
		log.Fatal("Failed to initialize cache", zap.Error(err))
	}

	certificates := newCertificateStorage(bootCtx, cfg, log)
	gateway := newCardGateway(cfg, log)
	mailer := notification.NewMailer(cfg.SMTP, log)

	eventBus := event.NewInMemoryEventBus(log)

	// Repositories
	ticketSaleRepo := persistence.NewGormTicketSaleRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	scheduleRepo := persistence.NewGormScheduleRepository(db.DB)
	crewRepo := persistence.NewGormCrewRepository(db.DB)
	assessmentRepo := persistence.NewGormAssessmentRepository(db.DB)
	assetRepo := persistence.NewGormAssetRepository(db.DB)
	policyRepo := persistence.NewGormPolicyRepository(db.DB)
	coverageRepo := persistence.NewGormCoverageRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	receiptRepo := persistence.NewGormGoodsReceiptRepository(db.DB)
	invoiceRepo := persistence.NewGormVendorInvoiceRepository(db.DB)

	// Application services
	forecastService := forecastapp.NewForecastService(ticketSaleRepo, store,
		forecastapp.WithCacheTTL(cfg.Forecast.CacheTTL),
		forecastapp.WithDefaultLookback(cfg.Forecast.LookbackMonths),
		forecastapp.WithLogger(log),
	)
	ticketSaleService := forecastapp.NewTicketSaleService(ticketSaleRepo, forecastService, log)
	projectService := projectapp.NewProjectService(projectRepo, scheduleRepo, crewRepo)
	riskService := riskapp.NewRiskService(projectRepo, scheduleRepo, crewRepo, assessmentRepo, eventBus, log)
	assetService := assetapp.NewAssetService(assetRepo, policyRepo, coverageRepo, certificates, cfg.Storage.PresignExpiry)
	paymentService := paymentapp.NewPaymentService(paymentRepo, invoiceRepo, gateway, store, log)
	procurementService := procurementapp.NewProcurementService(purchaseOrderRepo, receiptRepo, invoiceRepo,
		procurementapp.ToleranceFromFractions(cfg.Procurement.QuantityTolerance, cfg.Procurement.PriceTolerance), log)

	domainMetrics, err := telemetry.NewDomainMetrics(meterProvider.Meter("ghxstship/domain"))
	if err != nil {
		log.Warn("Domain metrics unavailable", zap.Error(err))
	} else {
		forecastService.SetDomainMetrics(domainMetrics)
		riskService.SetDomainMetrics(domainMetrics)
		paymentService.SetDomainMetrics(domainMetrics)
		procurementService.SetDomainMetrics(domainMetrics)
	}

	eventBus.Subscribe(riskapp.NewAlertNotifier(projectRepo, mailer, log))
	if err := eventBus.Start(bootCtx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	riskScan := startRiskScan(bootCtx, cfg.Risk, projectRepo, riskService, log)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize,
		middleware.RouteLimit{Route: "/api/v1/webhooks/stripe", MaxBytes: 64 << 10},
	))
	engine.Use(middleware.HTTPMetrics(meterProvider.Meter("ghxstship/http")))
	engine.Use(middleware.Profiling(profiler.IsEnabled()))

	// Authentication binds the tenant; everything after it may rely on one.
	var authMiddleware gin.HandlerFunc
	if cfg.JWT.Enabled {
		jwtConfig := middleware.DefaultJWTConfig(auth.NewJWTService(cfg.JWT))
		jwtConfig.Logger = log
		authMiddleware = middleware.JWTAuthMiddlewareWithConfig(jwtConfig)
	} else {
		authMiddleware = middleware.HeaderTenant(middleware.HeaderTenantConfig{
			SkipPaths: []string{"/api/v1/webhooks/stripe"},
			Logger:    log,
		})
	}
	apiMiddleware := []gin.HandlerFunc{authMiddleware, middleware.SpanEnricher()}

	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(rateLimiter))
	}

	systemHandler := handler.NewSystemHandler(db, version)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	docs.SwaggerInfo.Version = version
	var swaggerAuth gin.HandlerFunc
	if cfg.JWT.Enabled {
		swaggerAuth = authMiddleware
	}
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.JWT.Enabled,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, swaggerAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithMiddleware(apiMiddleware...),
	)
	r.Register(router.DomainGroups(router.Handlers{
		Forecast:    handler.NewForecastHandler(forecastService, ticketSaleService),
		Project:     handler.NewProjectHandler(projectService),
		Risk:        handler.NewRiskHandler(riskService),
		Asset:       handler.NewAssetHandler(assetService),
		Payment:     handler.NewPaymentHandler(paymentService),
		Procurement: handler.NewProcurementHandler(procurementService),
		Webhook:     handler.NewStripeWebhookHandler(paymentService),
	})...)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	r.Register(systemRoutes)
	systemHandler.SetModules(r.Modules())
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if rateLimiter != nil {
		rateLimiter.Stop()
	}
	if riskScan != nil {
		riskScan.stop(ctx, log)
	}
	if err := eventBus.Stop(ctx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if err := store.Close(); err != nil {
		log.Error("Error closing cache", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(ctx); err != nil {
		log.Error("Error flushing metrics", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(ctx); err != nil {
		log.Error("Error flushing traces", zap.Error(err))
	}
	log.Info("Server exited gracefully")
	if err := logProvider.Shutdown(ctx); err != nil {
		log.Error("Error flushing logs", zap.Error(err))
	}
}

// newCertificateStorage returns S3 storage when a bucket is configured.
// Without one the certificate endpoints answer 422.
func newCertificateStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) assetapp.CertificateStorage {
	if cfg.Storage.Bucket == "" {
		log.Warn("Certificate storage not configured, certificate uploads disabled")
		return storage.Unconfigured{}
	}
	s3, err := storage.NewS3ObjectStorage(&cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiry(cfg.Storage.PresignExpiry),
	)
	if err != nil {
		log.Fatal("Failed to initialize certificate storage", zap.Error(err))
	}
	if err := s3.EnsureBucket(ctx); err != nil {
		log.Warn("Certificate bucket check failed", zap.String("bucket", s3.Bucket()), zap.Error(err))
	}
	return s3
}

// newCardGateway returns the Stripe gateway when card payments are enabled
func newCardGateway(cfg *config.Config, log *zap.Logger) payment.CardGateway {
	if !cfg.Stripe.Enabled {
		log.Info("Card payments disabled")
		return paymentinfra.DisabledGateway{}
	}
	gateway, err := paymentinfra.NewStripeGateway(paymentinfra.StripeConfig{
		SecretKey:     cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize Stripe gateway", zap.Error(err))
	}
	return gateway
}

type riskScanRuntime struct {
	trigger *scheduler.RiskScanTrigger
	pool    *scheduler.Scheduler
}

func (r *riskScanRuntime) stop(ctx context.Context, log *zap.Logger) {
	if err := r.trigger.Stop(ctx); err != nil {
		log.Error("Error stopping risk scan trigger", zap.Error(err))
	}
	if err := r.pool.Stop(ctx); err != nil {
		log.Error("Error stopping risk scan workers", zap.Error(err))
	}
}

// startRiskScan reassesses every active project on a timer, one job per
// tenant, through the scheduler's worker pool
func startRiskScan(ctx context.Context, cfg config.RiskConfig, projects *persistence.GormProjectRepository, risks *riskapp.RiskService, log *zap.Logger) *riskScanRuntime {
	if !cfg.ScanEnabled {
		log.Info("Scheduled risk scan disabled")
		return nil
	}

	poolCfg := scheduler.DefaultConfig()
	if cfg.Workers > 0 {
		poolCfg.Workers = cfg.Workers
	}
	if cfg.JobTimeout > 0 {
		poolCfg.JobTimeout = cfg.JobTimeout
	}
	pool, err := scheduler.NewScheduler(poolCfg, scheduler.ExecutorFunc(func(ctx context.Context, job *scheduler.Job) error {
		return risks.ScanTenant(ctx, job.TenantID)
	}), log)
	if err != nil {
		log.Fatal("Invalid risk scan configuration", zap.Error(err))
	}
	if err := pool.Start(ctx); err != nil {
		log.Fatal("Failed to start risk scan workers", zap.Error(err))
	}

	tenants := scheduler.TenantProviderFunc(func(ctx context.Context) ([]uuid.UUID, error) {
		return projects.TenantsWithStatus(ctx, project.StatusActive)
	})
	trigger := scheduler.NewRiskScanTrigger(cfg.ScanInterval, poolCfg.RetryAttempts, pool, tenants, log)
	if err := trigger.Start(ctx); err != nil {
		log.Fatal("Failed to start risk scan trigger", zap.Error(err))
	}
	log.Info("Scheduled risk scan started",
		zap.Duration("interval", cfg.ScanInterval),
		zap.Int("workers", poolCfg.Workers),
	)
	return &riskScanRuntime{trigger: trigger, pool: pool}
}
