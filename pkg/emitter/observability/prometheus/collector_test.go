package prometheus

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecordsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	ctx := context.Background()

	c.RecordResolution(ctx, "done", "resolution", 2)
	c.RecordResolution(ctx, "done", "resolution", 0)
	c.RecordDeliveryFailure(ctx, "done")
	c.RecordUnhandled(ctx, "error")
	c.RecordUnhandled(ctx, "error")
	c.RecordReplay(ctx, "notify", 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.resolutions.WithLabelValues("done", "resolution")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.deliveryFailures.WithLabelValues("done")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.unhandled.WithLabelValues("error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.replays.WithLabelValues("notify")))
}

func TestCollectorRegistersOnRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordResolution(context.Background(), "tap", "observe", 1)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "emitkit_channel_resolutions_total")
	assert.Contains(t, names, "emitkit_channel_listeners")
}

func TestCollectorDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)
	assert.Panics(t, func() { NewCollector(reg) })
}
