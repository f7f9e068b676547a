package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrOperation = "operation"
	attrStatus    = "status"
	attrTool      = "tool"
)

// Metrics provides methods for recording pipeline metrics. The zero value
// is a no-op recorder.
type Metrics struct {
	emailsFetchedTotal    metric.Int64Counter
	ordersIdentifiedTotal metric.Int64Counter
	ordersPostedTotal     metric.Int64Counter

	operationDuration metric.Float64Histogram

	bcRetriesTotal metric.Int64Counter

	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram
}

// NewMetrics creates a Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.emailsFetchedTotal, err = meter.Int64Counter(
		"emails_fetched_total",
		metric.WithDescription("Total number of emails fetched from the inbox"),
		metric.WithUnit("{email}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create emails_fetched_total counter: %w", err)
	}

	m.ordersIdentifiedTotal, err = meter.Int64Counter(
		"orders_identified_total",
		metric.WithDescription("Total number of order identification results by status"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create orders_identified_total counter: %w", err)
	}

	m.ordersPostedTotal, err = meter.Int64Counter(
		"orders_posted_total",
		metric.WithDescription("Total number of sales order postings by status"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create orders_posted_total counter: %w", err)
	}

	m.operationDuration, err = meter.Float64Histogram(
		"pipeline_operation_duration_seconds",
		metric.WithDescription("Pipeline operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline_operation_duration_seconds histogram: %w", err)
	}

	m.bcRetriesTotal, err = meter.Int64Counter(
		"bc_request_retries_total",
		metric.WithDescription("Total number of retried Business Central API requests by reason"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bc_request_retries_total counter: %w", err)
	}

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"agent_tool_invocations_total",
		metric.WithDescription("Total number of agent tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"agent_tool_duration_seconds",
		metric.WithDescription("Agent tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent_tool_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordEmailsFetched records emails fetched from the inbox.
func (m *Metrics) RecordEmailsFetched(ctx context.Context, count int) {
	if m.emailsFetchedTotal == nil {
		return
	}
	m.emailsFetchedTotal.Add(ctx, int64(count))
}

// RecordIdentification records one order identification result.
// Status should be one of: "identified", "no_order", "error".
func (m *Metrics) RecordIdentification(ctx context.Context, status string, duration time.Duration) {
	if m.ordersIdentifiedTotal == nil || m.operationDuration == nil {
		return
	}

	m.ordersIdentifiedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrStatus, status),
	))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(attrOperation, "identify"),
		attribute.String(attrStatus, status),
	))
}

// RecordPosting records one sales order posting result.
// Status should be one of: "success", "error".
func (m *Metrics) RecordPosting(ctx context.Context, status string, duration time.Duration) {
	if m.ordersPostedTotal == nil || m.operationDuration == nil {
		return
	}

	m.ordersPostedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrStatus, status),
	))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(attrOperation, "post"),
		attribute.String(attrStatus, status),
	))
}

// RecordBCRetry records one retried Business Central API request.
// Reason should be "unauthorized" or "transient".
func (m *Metrics) RecordBCRetry(ctx context.Context, reason string) {
	if m.bcRetriesTotal == nil {
		return
	}
	m.bcRetriesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

// RecordToolInvocation records an agent tool invocation with status and
// duration. Status should be "success" or "error".
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
