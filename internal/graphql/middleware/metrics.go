package middleware

import (
	"context"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"github.com/faizp/tweets/backend/go-graphql/internal/platform/metrics"
)

var (
	_ graphql.HandlerExtension    = (*Metrics)(nil)
	_ graphql.ResponseInterceptor = (*Metrics)(nil)
	_ graphql.FieldInterceptor    = (*Metrics)(nil)
)

// Metrics is a gqlgen extension recording operation outcomes and resolver
// calls.
type Metrics struct {
	m *metrics.Metrics
}

func NewMetrics(m *metrics.Metrics) *Metrics {
	return &Metrics{m: m}
}

func (e *Metrics) ExtensionName() string {
	return "PrometheusMetrics"
}

func (e *Metrics) Validate(graphql.ExecutableSchema) error {
	return nil
}

func (e *Metrics) InterceptResponse(ctx context.Context, next graphql.ResponseHandler) *graphql.Response {
	if !graphql.HasOperationContext(ctx) {
		return next(ctx)
	}

	operation := "unknown"
	if op := graphql.GetOperationContext(ctx).Operation; op != nil {
		operation = string(op.Operation)
	}

	start := time.Now()
	resp := next(ctx)
	e.m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	status := "ok"
	if resp == nil || len(resp.Errors) > 0 || len(graphql.GetErrors(ctx)) > 0 {
		status = "error"
	}
	e.m.OperationsTotal.WithLabelValues(operation, status).Inc()
	return resp
}

func (e *Metrics) InterceptField(ctx context.Context, next graphql.Resolver) (interface{}, error) {
	fc := graphql.GetFieldContext(ctx)
	if fc != nil && fc.IsResolver {
		e.m.ResolverCalls.WithLabelValues(fc.Object, fc.Field.Name).Inc()
	}
	return next(ctx)
}
