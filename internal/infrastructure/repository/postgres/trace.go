package postgres

import (
	"context"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxTracedQueryLength = 512

var (
	tracer                = otel.Tracer("github.com/riskibarqy/fantasy-coach/internal/infrastructure/repository/postgres")
	queryWhitespaceRegexp = regexp.MustCompile(`\s+`)
)

func formatQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegexp.ReplaceAllString(query, " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}

// traceQuery starts a client span for one statement. end records err on
// the span; sql.ErrNoRows is not an error here.
func traceQuery(ctx context.Context, op, table, query string) (context.Context, func(err error)) {
	ctx, span := tracer.Start(ctx, "postgres."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", op),
			attribute.String("db.sql.table", table),
			attribute.String("db.statement", formatQueryForTrace(query)),
		),
	)
	return ctx, func(err error) {
		if err != nil && !isNotFound(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
