package gotomars

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.RecordFrame(2*time.Millisecond, 12.5)
	m.RecordFrame(3*time.Millisecond, 13)
	m.RecordDraw(primPoints)
	m.RecordDraw(primLines)
	m.RecordDraw(primLines)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.frames))
	assert.Equal(t, 13.0, testutil.ToFloat64(m.routeLength))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.drawCalls.WithLabelValues(primPoints)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.drawCalls.WithLabelValues(primLines)))

	n, err := testutil.GatherAndCount(reg, "gotomars_frame_duration_seconds", "gotomars_draw_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "one histogram and two primitive series")

	assert.Panics(t, func() { NewMetrics(reg) }, "metrics are registered once per registry")
}

func TestMetricsNil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordFrame(time.Millisecond, 1)
		m.RecordDraw(primTriangles)
	})
}
