package quicfec

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/francoismichel/quirl/internal/quicfec")

// traceDecision emits one span per scheduler decision, cheap enough to
// leave on by default since sampling is controlled upstream by the
// configured TracerProvider.
func traceDecision(ctx context.Context, pathID string, algorithm string, shouldSend bool) {
	_, span := tracer.Start(ctx, "fecsched.decision", trace.WithAttributes(
		attribute.String("fecsched.path_id", pathID),
		attribute.String("fecsched.algorithm", algorithm),
		attribute.Bool("fecsched.should_send_repair", shouldSend),
	))
	span.End()
}
