package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when no meter is supplied
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// DomainMetrics records forecast, risk, payment, and procurement counters.
// A nil *DomainMetrics is valid and records nothing.
type DomainMetrics struct {
	forecasts        metric.Int64Counter
	forecastDuration metric.Float64Histogram
	riskEvaluations  metric.Int64Counter
	riskAlerts       metric.Int64Counter
	riskScanFailures metric.Int64Counter
	payments         metric.Int64Counter
	paymentAmount    metric.Int64Counter
	matches          metric.Int64Counter
	webhooks         metric.Int64Counter
}

// NewDomainMetrics registers the instruments on meter
func NewDomainMetrics(meter metric.Meter) (*DomainMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	m := &DomainMetrics{}
	var err error

	if m.forecasts, err = meter.Int64Counter("ghx.forecast.requests",
		metric.WithDescription("Demand forecasts served"), metric.WithUnit("{forecast}")); err != nil {
		return nil, wrapInstrumentErr("ghx.forecast.requests", err)
	}
	if m.forecastDuration, err = meter.Float64Histogram("ghx.forecast.duration",
		metric.WithDescription("Time spent computing a forecast"), metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DurationBuckets...)); err != nil {
		return nil, wrapInstrumentErr("ghx.forecast.duration", err)
	}
	if m.riskEvaluations, err = meter.Int64Counter("ghx.risk.evaluations",
		metric.WithDescription("Risk evaluations by resulting level"), metric.WithUnit("{evaluation}")); err != nil {
		return nil, wrapInstrumentErr("ghx.risk.evaluations", err)
	}
	if m.riskAlerts, err = meter.Int64Counter("ghx.risk.alerts",
		metric.WithDescription("Risk evaluations that raised an alert"), metric.WithUnit("{alert}")); err != nil {
		return nil, wrapInstrumentErr("ghx.risk.alerts", err)
	}
	if m.riskScanFailures, err = meter.Int64Counter("ghx.risk.scan.failures",
		metric.WithDescription("Projects a scheduled risk scan could not assess"), metric.WithUnit("{project}")); err != nil {
		return nil, wrapInstrumentErr("ghx.risk.scan.failures", err)
	}
	if m.payments, err = meter.Int64Counter("ghx.payments",
		metric.WithDescription("Vendor payments by method and outcome"), metric.WithUnit("{payment}")); err != nil {
		return nil, wrapInstrumentErr("ghx.payments", err)
	}
	if m.paymentAmount, err = meter.Int64Counter("ghx.payments.amount",
		metric.WithDescription("Vendor payment volume in minor currency units"), metric.WithUnit("{minor_unit}")); err != nil {
		return nil, wrapInstrumentErr("ghx.payments.amount", err)
	}
	if m.matches, err = meter.Int64Counter("ghx.procurement.matches",
		metric.WithDescription("Three-way match results"), metric.WithUnit("{match}")); err != nil {
		return nil, wrapInstrumentErr("ghx.procurement.matches", err)
	}
	if m.webhooks, err = meter.Int64Counter("ghx.payments.webhooks",
		metric.WithDescription("Card gateway webhook deliveries by outcome"), metric.WithUnit("{event}")); err != nil {
		return nil, wrapInstrumentErr("ghx.payments.webhooks", err)
	}
	return m, nil
}

func wrapInstrumentErr(name string, err error) error {
	return fmt.Errorf("telemetry: failed to create %s: %w", name, err)
}

// RecordForecast counts a forecast and its compute time
func (m *DomainMetrics) RecordForecast(ctx context.Context, tenantID uuid.UUID, metricName string, cacheHit bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(AttrTenantID.String(tenantID.String()), AttrMetric.String(metricName), AttrCacheHit.Bool(cacheHit))
	m.forecasts.Add(ctx, 1, attrs)
	if !cacheHit {
		m.forecastDuration.Record(ctx, elapsed.Seconds(), attrs)
	}
}

// RecordRiskEvaluation counts an evaluation and whether it alerted
func (m *DomainMetrics) RecordRiskEvaluation(ctx context.Context, tenantID uuid.UUID, level string, alert bool) {
	if m == nil {
		return
	}
	tenant := AttrTenantID.String(tenantID.String())
	m.riskEvaluations.Add(ctx, 1, metric.WithAttributes(tenant, AttrRiskLevel.String(level)))
	if alert {
		m.riskAlerts.Add(ctx, 1, metric.WithAttributes(tenant))
	}
}

// RecordRiskScanFailure counts a project skipped by a scheduled scan
func (m *DomainMetrics) RecordRiskScanFailure(ctx context.Context, tenantID uuid.UUID) {
	if m == nil {
		return
	}
	m.riskScanFailures.Add(ctx, 1, metric.WithAttributes(AttrTenantID.String(tenantID.String())))
}

// RecordPayment counts a payment transition and, for successful issues, its amount
func (m *DomainMetrics) RecordPayment(ctx context.Context, tenantID uuid.UUID, method, outcome string, amountMinor int64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(AttrTenantID.String(tenantID.String()), AttrPaymentMethod.String(method), AttrOutcome.String(outcome))
	m.payments.Add(ctx, 1, attrs)
	if amountMinor > 0 {
		m.paymentAmount.Add(ctx, amountMinor, attrs)
	}
}

// RecordMatch counts a three-way match result
func (m *DomainMetrics) RecordMatch(ctx context.Context, tenantID uuid.UUID, status string) {
	if m == nil {
		return
	}
	m.matches.Add(ctx, 1, metric.WithAttributes(AttrTenantID.String(tenantID.String()), AttrMatchStatus.String(status)))
}

// RecordWebhook counts a webhook delivery
func (m *DomainMetrics) RecordWebhook(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.webhooks.Add(ctx, 1, metric.WithAttributes(AttrOutcome.String(outcome)))
}
