package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// handlerSpanPrefix marks the only spans this package opens itself; helper
// spans such as writeJSON collapse into the handler span.
const handlerSpanPrefix = "httpapi.Handler."

var (
	apiTracer = otel.Tracer("fantasy-coach/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())
)

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !shouldCreateHTTPAPISpan(name) || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}
