package telemetry

import (
	"context"
	"time"

	"github.com/ghxstship/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

type queryStartKey struct{}

// RegisterDBTracing installs the otelgorm plugin and a callback pair that
// flags slow statements on the active span and in the log.
func RegisterDBTracing(db *gorm.DB, cfg config.TelemetryConfig, logger *zap.Logger) error {
	if !cfg.DBTraceEnabled {
		logger.Debug("Database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	threshold := cfg.DBSlowQueryThresh
	if threshold <= 0 {
		threshold = defaultSlowQueryThreshold
	}
	if err := registerSlowQueryCallbacks(db, threshold, logger); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.DBLogFullSQL),
		zap.Duration("slow_query_threshold", threshold),
	)
	return nil
}

func registerSlowQueryCallbacks(db *gorm.DB, threshold time.Duration, logger *zap.Logger) error {
	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) {
		if tx.Statement.Context == nil {
			return
		}
		start, ok := tx.Statement.Context.Value(queryStartKey{}).(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)
		if elapsed < threshold {
			return
		}
		span := trace.SpanFromContext(tx.Statement.Context)
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.duration_ms", elapsed.Milliseconds()),
		)
		logger.Warn("Slow query",
			zap.String("table", tx.Statement.Table),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", tx.RowsAffected),
		)
	}

	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("ghx_slow:before_create", before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("ghx_slow:after_create", after); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("ghx_slow:before_query", before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("ghx_slow:after_query", after); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("ghx_slow:before_update", before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("ghx_slow:after_update", after); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("ghx_slow:before_delete", before); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("ghx_slow:after_delete", after); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("ghx_slow:before_raw", before); err != nil {
		return err
	}
	if err := cb.Raw().After("gorm:raw").Register("ghx_slow:after_raw", after); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("ghx_slow:before_row", before); err != nil {
		return err
	}
	return cb.Row().After("gorm:row").Register("ghx_slow:after_row", after)
}
