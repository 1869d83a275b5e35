package encoderinbox

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
)

type inboxMetrics struct {
	success metric.Int64Counter
	failure metric.Int64Counter
	enabled bool
}

func newInboxMetrics() *inboxMetrics {
	meterProvider := otel.GetMeterProvider()
	if meterProvider == nil {
		meterProvider = noopmetric.NewMeterProvider()
	}
	meter := meterProvider.Meter("lingo-services-media.encoder_inbox")

	success, err := meter.Int64Counter("encoder_inbox_success_total", metric.WithDescription("Number of encoder results applied"))
	if err != nil {
		return &inboxMetrics{}
	}
	failure, err := meter.Int64Counter("encoder_inbox_failure_total", metric.WithDescription("Number of encoder results failed"))
	if err != nil {
		return &inboxMetrics{}
	}

	return &inboxMetrics{
		success: success,
		failure: failure,
		enabled: true,
	}
}

func (m *inboxMetrics) recordSuccess(ctx context.Context, status string) {
	if m == nil || !m.enabled {
		return
	}
	m.success.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

func (m *inboxMetrics) recordFailure(ctx context.Context, status string, _ error) {
	if m == nil || !m.enabled {
		return
	}
	attrs := metric.WithAttributes(attribute.String("status", status))
	m.failure.Add(ctx, 1, attrs)
}
