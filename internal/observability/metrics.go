package observability

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// DatabaseQueryLatency records database query latency by operation and table.
var DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "filmorate_database_query_latency_seconds",
	Help:    "Database query latency in seconds",
	Buckets: prometheus.DefBuckets,
}, []string{"operation", "table"})

const (
	startKey = "observability:start"
	spanKey  = "observability:span"
)

// QueryPlugin is a GORM plugin that times every statement into DatabaseQueryLatency and
// wraps it in a client span.
type QueryPlugin struct {
	system string
}

// NewQueryPlugin returns a plugin labelling spans with the given db.system (postgresql, sqlite).
func NewQueryPlugin(system string) *QueryPlugin {
	return &QueryPlugin{system: system}
}

func (p *QueryPlugin) Name() string {
	return "filmorate:observability"
}

func (p *QueryPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	steps := []struct {
		op     string
		before func(name string, fn func(*gorm.DB)) error
		after  func(name string, fn func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, s := range steps {
		if err := s.before("observability:before_"+s.op, p.before(s.op)); err != nil {
			return err
		}
		if err := s.after("observability:after_"+s.op, p.after(s.op)); err != nil {
			return err
		}
	}
	return nil
}

func (p *QueryPlugin) before(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		db.InstanceSet(startKey, time.Now())
		if db.Statement.Context == nil {
			return
		}
		ctx, span := Tracer.Start(db.Statement.Context, "db."+op,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("db.system", p.system),
				attribute.String("db.operation", op),
			),
		)
		db.Statement.Context = ctx
		db.InstanceSet(spanKey, span)
	}
}

func (p *QueryPlugin) after(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		table := db.Statement.Table
		if table == "" {
			table = "raw"
		}

		if v, ok := db.InstanceGet(startKey); ok {
			if start, ok := v.(time.Time); ok {
				DatabaseQueryLatency.WithLabelValues(op, table).Observe(time.Since(start).Seconds())
			}
		}

		v, ok := db.InstanceGet(spanKey)
		if !ok {
			return
		}
		span, ok := v.(trace.Span)
		if !ok {
			return
		}
		span.SetAttributes(
			attribute.String("db.table", table),
			attribute.Int64("db.rows_affected", db.RowsAffected),
		)
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			span.RecordError(db.Error)
			span.SetStatus(codes.Error, db.Error.Error())
		}
		span.End()
	}
}
