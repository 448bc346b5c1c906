package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantProvider lists the tenants that currently have work to scan
type TenantProvider interface {
	TenantsWithActiveProjects(ctx context.Context) ([]uuid.UUID, error)
}

// TenantProviderFunc adapts a function to TenantProvider
type TenantProviderFunc func(ctx context.Context) ([]uuid.UUID, error)

// TenantsWithActiveProjects calls f
func (f TenantProviderFunc) TenantsWithActiveProjects(ctx context.Context) ([]uuid.UUID, error) {
	return f(ctx)
}

// RiskScanTrigger submits one risk scan job per tenant on a fixed interval
type RiskScanTrigger struct {
	interval   time.Duration
	maxRetries int
	scheduler  *Scheduler
	tenants    TenantProvider
	logger     *zap.Logger

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
	lastRun time.Time
}

// NewRiskScanTrigger creates a trigger firing every interval
func NewRiskScanTrigger(interval time.Duration, maxRetries int, scheduler *Scheduler, tenants TenantProvider, logger *zap.Logger) *RiskScanTrigger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RiskScanTrigger{
		interval:   interval,
		maxRetries: maxRetries,
		scheduler:  scheduler,
		tenants:    tenants,
		logger:     logger,
	}
}

// Start begins the ticker loop
func (t *RiskScanTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return nil
	}
	if t.interval <= 0 {
		return ErrInvalidConfig
	}

	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	t.cancel = cancel
	t.running = true

	t.wg.Add(1)
	go t.loop(ctx)

	t.logger.Info("Risk scan trigger started", zap.Duration("interval", t.interval))
	return nil
}

// Stop ends the ticker loop
func (t *RiskScanTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return nil
	}
	t.running = false
	t.cancel()
	t.mu.Unlock()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LastRun returns when jobs were last submitted
func (t *RiskScanTrigger) LastRun() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastRun
}

func (t *RiskScanTrigger) loop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := t.TriggerNow(ctx); err != nil {
				t.logger.Error("Risk scan trigger failed", zap.Error(err))
			}
		}
	}
}

// TriggerNow submits a scan job for every tenant with active projects and
// returns how many were queued
func (t *RiskScanTrigger) TriggerNow(ctx context.Context) (int, error) {
	tenantIDs, err := t.tenants.TenantsWithActiveProjects(ctx)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, tenantID := range tenantIDs {
		if err := t.scheduler.SubmitJob(NewJob(tenantID, JobKindRiskScan, t.maxRetries)); err != nil {
			t.logger.Warn("Risk scan job not queued",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
			continue
		}
		queued++
	}

	t.mu.Lock()
	t.lastRun = time.Now()
	t.mu.Unlock()

	t.logger.Info("Risk scan jobs queued", zap.Int("tenants", len(tenantIDs)), zap.Int("queued", queued))
	return queued, nil
}
