// Package mcpliteotel traces tool calls with OpenTelemetry.
package mcpliteotel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/skosovsky/mcplite"
)

// ScopeName is the instrumentation scope of the tracer.
const ScopeName = "github.com/skosovsky/mcplite/ext/mcpliteotel"

// Attribute keys set on tool spans.
const (
	AttrToolName  = attribute.Key("mcp.tool.name")
	AttrArgCount  = attribute.Key("mcp.tool.argument_count")
	AttrToolError = attribute.Key("mcp.tool.error")
)

// Middleware returns a registry middleware that wraps every tool call in a span named
// "tools/call <name>". Handler errors and panics mark the span as failed; a panic is
// re-raised after the span ends so the Dispatcher still reports it.
func Middleware(tp trace.TracerProvider) mcplite.Middleware {
	tracer := tp.Tracer(ScopeName)
	return func(name string, next mcplite.Handler) mcplite.Handler {
		return func(ctx context.Context, args map[string]any) (res any, err error) {
			ctx, span := tracer.Start(ctx, "tools/call "+name,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(AttrToolName.String(name), AttrArgCount.Int(len(args))),
			)
			defer func() {
				if p := recover(); p != nil {
					span.SetAttributes(AttrToolError.Bool(true))
					span.SetStatus(codes.Error, fmt.Sprint(p))
					span.End()
					panic(p)
				}
				span.End()
			}()

			res, err = next(ctx, args)
			if err != nil {
				span.RecordError(err)
				span.SetAttributes(AttrToolError.Bool(true))
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}
			span.SetStatus(codes.Ok, "")
			return res, nil
		}
	}
}
