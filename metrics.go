package gotomars

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Primitive labels of the draw call counter.
const (
	primTriangles = "triangles"
	primLineStrip = "line_strip"
	primLines     = "lines"
	primPoints    = "points"
)

// Metrics collects the frame statistics of a Renderer.
// A nil *Metrics records nothing.
type Metrics struct {
	frameDuration prometheus.Histogram
	frames        prometheus.Counter
	routeLength   prometheus.Gauge
	drawCalls     *prometheus.CounterVec
}

// NewMetrics returns the renderer metrics registered on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		frameDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gotomars_frame_duration_seconds",
				Help:    "Time spent simulating and drawing a frame",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 10),
			},
		),
		frames: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "gotomars_frames_total",
				Help: "Total number of frames rendered",
			},
		),
		routeLength: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "gotomars_route_length_units",
				Help: "Length of the current Earth to Mars route in world units",
			},
		),
		drawCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotomars_draw_calls_total",
				Help: "Total number of draw calls issued to the backend",
			},
			[]string{"primitive"},
		),
	}
	reg.MustRegister(m.frameDuration, m.frames, m.routeLength, m.drawCalls)
	return m
}

// RecordFrame records one frame of the given duration and route length.
func (m *Metrics) RecordFrame(duration time.Duration, routeLength float64) {
	if m == nil {
		return
	}
	m.frameDuration.Observe(duration.Seconds())
	m.frames.Inc()
	m.routeLength.Set(routeLength)
}

// RecordDraw records one draw call of the given primitive.
func (m *Metrics) RecordDraw(primitive string) {
	if m == nil {
		return
	}
	m.drawCalls.WithLabelValues(primitive).Inc()
}
