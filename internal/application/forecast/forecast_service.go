// Package forecast serves demand forecasts built from ticket sales history
// and records the sales that feed them.
package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ghxstship/backend/internal/domain/demand"
	"github.com/ghxstship/backend/internal/domain/forecast"
	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/ghxstship/backend/internal/infrastructure/cache"
	"github.com/ghxstship/backend/internal/infrastructure/logger"
	"github.com/ghxstship/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Horizon and lookback limits
const (
	MinHorizon            = 1
	MaxHorizon            = 36
	DefaultHorizon        = 12
	DefaultLookbackMonths = 36
	MaxLookbackMonths     = 120
	defaultCacheTTL       = 15 * time.Minute
)

var (
	ErrInvalidHorizon  = shared.NewDomainError("INVALID_HORIZON", fmt.Sprintf("Horizon must be between %d and %d", MinHorizon, MaxHorizon))
	ErrInvalidMetric   = shared.NewDomainError("INVALID_METRIC", "Metric must be revenue or quantity")
	ErrInvalidLookback = shared.NewDomainError("INVALID_LOOKBACK", fmt.Sprintf("Lookback must be between 1 and %d months", MaxLookbackMonths))
)

// CachePrefix is the key prefix for every cached forecast of a tenant
func CachePrefix(tenantID uuid.UUID) string {
	return "forecast:" + tenantID.String() + ":"
}

func cacheKey(tenantID uuid.UUID, q DemandQuery) string {
	event := "all"
	if q.EventID != nil {
		event = q.EventID.String()
	}
	return fmt.Sprintf("%s%s:%s:%d:%d", CachePrefix(tenantID), event, q.Metric, q.Horizon, q.LookbackMonths)
}

// ForecastService builds demand forecasts from ticket sales and caches them
type ForecastService struct {
	sales           demand.TicketSaleRepository
	cache           cache.Store
	cacheTTL        time.Duration
	defaultLookback int
	metrics         *telemetry.DomainMetrics
	logger          *zap.Logger
	now             func() time.Time
}

// ForecastServiceOption configures a ForecastService
type ForecastServiceOption func(*ForecastService)

// WithCacheTTL sets how long results stay cached
func WithCacheTTL(ttl time.Duration) ForecastServiceOption {
	return func(s *ForecastService) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithDefaultLookback sets the lookback used when a query leaves it unset
func WithDefaultLookback(months int) ForecastServiceOption {
	return func(s *ForecastService) {
		if months > 0 && months <= MaxLookbackMonths {
			s.defaultLookback = months
		}
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) ForecastServiceOption {
	return func(s *ForecastService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the clock used to place the lookback window
func WithClock(now func() time.Time) ForecastServiceOption {
	return func(s *ForecastService) { s.now = now }
}

// NewForecastService creates a ForecastService
func NewForecastService(sales demand.TicketSaleRepository, store cache.Store, opts ...ForecastServiceOption) *ForecastService {
	s := &ForecastService{
		sales:           sales,
		cache:           store,
		cacheTTL:        defaultCacheTTL,
		defaultLookback: DefaultLookbackMonths,
		logger:          zap.NewNop(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetDomainMetrics attaches metric instruments
func (s *ForecastService) SetDomainMetrics(m *telemetry.DomainMetrics) {
	s.metrics = m
}

// DemandForecast forecasts monthly ticket demand for one event, or for the
// whole tenant when q.EventID is nil.
func (s *ForecastService) DemandForecast(ctx context.Context, tenantID uuid.UUID, q DemandQuery) (resp *ForecastResponse, err error) {
	q, err = s.normalize(q)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, "ForecastService", "DemandForecast",
		attribute.String("forecast.metric", string(q.Metric)),
		attribute.Int("forecast.horizon", q.Horizon),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	started := time.Now()
	key := cacheKey(tenantID, q)
	log := logger.Enrich(ctx, s.logger)

	if cached, ok := s.lookup(ctx, key, log); ok {
		span.SetAttributes(attribute.Bool("forecast.cache_hit", true))
		s.metrics.RecordForecast(ctx, tenantID, string(q.Metric), true, time.Since(started))
		return cached, nil
	}

	from, to := demand.Window(s.now(), q.LookbackMonths)
	sales, err := s.sales.FindInRange(ctx, tenantID, demand.SalesQuery{
		EventID: q.EventID,
		From:    from,
		To:      to.AddDate(0, 1, 0),
	})
	if err != nil {
		return nil, fmt.Errorf("load ticket sales: %w", err)
	}

	series := demand.MonthlySeries(demand.BucketMonthly(sales), from, to, q.Metric)
	result := forecast.Forecast(series.Values, q.Horizon)

	resp = toForecastResponse(result, q.Horizon, s.now().UTC())
	resp.EventID = q.EventID
	resp.Metric = string(q.Metric)
	resp.LookbackMonths = q.LookbackMonths
	resp.History = make([]PeriodValue, series.Len())
	for i, period := range series.Periods {
		resp.History[i] = PeriodValue{Period: period.Format(periodLayout), Value: series.Values[i]}
	}
	last := to
	if series.Len() > 0 {
		last = series.Periods[series.Len()-1]
	}
	for i := range resp.Points {
		resp.Points[i].Period = last.AddDate(0, resp.Points[i].Step, 0).Format(periodLayout)
	}

	s.store(ctx, key, resp, log)
	span.SetAttributes(
		attribute.Bool("forecast.cache_hit", false),
		attribute.Int("forecast.history_len", series.Len()),
		attribute.String("forecast.method", resp.Method),
	)
	s.metrics.RecordForecast(ctx, tenantID, string(q.Metric), false, time.Since(started))
	return resp, nil
}

// ForecastSeries forecasts a caller-supplied series without touching storage
func (s *ForecastService) ForecastSeries(ctx context.Context, tenantID uuid.UUID, req SeriesRequest) (*ForecastResponse, error) {
	if req.Horizon < MinHorizon || req.Horizon > MaxHorizon {
		return nil, ErrInvalidHorizon
	}
	if len(req.Values) == 0 {
		return nil, shared.NewDomainError("INVALID_SERIES", "Series needs at least one value")
	}
	started := time.Now()
	result := forecast.Forecast(req.Values, req.Horizon)
	s.metrics.RecordForecast(ctx, tenantID, "series", false, time.Since(started))
	return toForecastResponse(result, req.Horizon, s.now().UTC()), nil
}

// Invalidate drops every cached forecast of a tenant
func (s *ForecastService) Invalidate(ctx context.Context, tenantID uuid.UUID) {
	if err := s.cache.DeletePrefix(ctx, CachePrefix(tenantID)); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to invalidate forecast cache", zap.Error(err))
	}
}

func (s *ForecastService) normalize(q DemandQuery) (DemandQuery, error) {
	if q.Horizon == 0 {
		q.Horizon = DefaultHorizon
	}
	if q.Horizon < MinHorizon || q.Horizon > MaxHorizon {
		return q, ErrInvalidHorizon
	}
	if q.Metric == "" {
		q.Metric = demand.MetricRevenue
	}
	if !q.Metric.IsValid() {
		return q, ErrInvalidMetric
	}
	if q.LookbackMonths == 0 {
		q.LookbackMonths = s.defaultLookback
	}
	if q.LookbackMonths < 1 || q.LookbackMonths > MaxLookbackMonths {
		return q, ErrInvalidLookback
	}
	return q, nil
}

func (s *ForecastService) lookup(ctx context.Context, key string, log *zap.Logger) (*ForecastResponse, bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn("Forecast cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var resp ForecastResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		log.Warn("Discarding undecodable cached forecast", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	resp.Cached = true
	return &resp, true
}

func (s *ForecastService) store(ctx context.Context, key string, resp *ForecastResponse, log *zap.Logger) {
	raw, err := json.Marshal(resp)
	if err != nil {
		log.Warn("Failed to encode forecast for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		log.Warn("Forecast cache write failed", zap.String("key", key), zap.Error(err))
	}
}
