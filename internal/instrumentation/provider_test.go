package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
)

func TestNewProviderDisabled(t *testing.T) {
	ctx := context.Background()

	p, err := NewProvider(ctx, Config{Enabled: false})
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	require.NotNil(t, p.Metrics())

	// The no-op recorder must accept calls without instruments.
	p.Metrics().RecordEmailsFetched(ctx, 3)
	p.Metrics().RecordIdentification(ctx, "identified", time.Second)
	p.Metrics().RecordPosting(ctx, "success", time.Second)
	p.Metrics().RecordToolInvocation(ctx, "fetch_gmail_emails", "success", time.Second)
	p.Metrics().RecordBCRetry(ctx, "transient")

	assert.NoError(t, p.Shutdown(ctx))
}

func TestNewMetrics(t *testing.T) {
	ctx := context.Background()
	mp := metric.NewMeterProvider()
	t.Cleanup(func() { _ = mp.Shutdown(ctx) })

	m, err := NewMetrics(mp.Meter("test"))
	require.NoError(t, err)

	m.RecordEmailsFetched(ctx, 2)
	m.RecordIdentification(ctx, "no_order", 500*time.Millisecond)
	m.RecordPosting(ctx, "error", time.Second)
	m.RecordToolInvocation(ctx, "post_order_to_business_central", "error", time.Second)
	m.RecordBCRetry(ctx, "unauthorized")
}
