package gotomars

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	kitlog "github.com/go-kit/kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	op           string
	depth, blend bool
	color        Color
	vertices     int
}

// recorder is a Backend which records every draw call with the state it was issued in.
type recorder struct {
	depth, blend bool
	color        Color
	pointSize    float32
	lineWidth    float32
	mvp          mgl64.Mat4
	width        int
	height       int
	calls        []call
}

func (r *recorder) Clear()                    { r.calls = append(r.calls, call{op: "clear"}) }
func (r *recorder) Viewport(w, h int)         { r.width, r.height = w, h }
func (r *recorder) SetMVP(m mgl64.Mat4)       { r.mvp = m }
func (r *recorder) SetColor(c Color)          { r.color = c }
func (r *recorder) SetPointSize(s float32)    { r.pointSize = s }
func (r *recorder) SetLineWidth(w float32)    { r.lineWidth = w }
func (r *recorder) SetDepthTest(on bool)      { r.depth = on }
func (r *recorder) SetBlend(on bool)          { r.blend = on }
func (r *recorder) DrawMesh(m *Mesh)          { r.record("mesh", m.VertexCount()) }
func (r *recorder) DrawLineStrip(v []float32) { r.record("strip", len(v)/3) }
func (r *recorder) DrawLines(v []float32)     { r.record("lines", len(v)/3) }
func (r *recorder) DrawPoints(v []float32)    { r.record("points", len(v)/3) }

func (r *recorder) record(op string, n int) {
	r.calls = append(r.calls, call{op: op, depth: r.depth, blend: r.blend, color: r.color, vertices: n})
}

func (r *recorder) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func testConfig() Config {
	conf := DefaultConfig()
	conf.Seed = 1
	conf.Epoch = j2000
	return conf
}

func TestRendererNotReady(t *testing.T) {
	r, err := NewRenderer(testConfig())
	require.NoError(t, err)
	assert.False(t, r.Ready())
	assert.Error(t, r.Frame(time.Now()))
	assert.Zero(t, r.Frames())
	// The simulation is built before any backend is attached.
	assert.Len(t, r.Route().Points, RouteSegments+1)
}

func TestRendererDrawSequence(t *testing.T) {
	r, err := NewRenderer(testConfig())
	require.NoError(t, err)
	b := &recorder{}
	r.Init(b)
	r.Resize(800, 600)
	assert.Equal(t, 800, b.width)
	assert.Equal(t, 600, b.height)
	require.NoError(t, r.Frame(j2000))

	require.Equal(t, "clear", b.calls[0].op)
	stars := b.calls[1]
	assert.Equal(t, "points", stars.op)
	assert.False(t, stars.depth, "stars are drawn without depth test")
	assert.Equal(t, 1500, stars.vertices)
	assert.Equal(t, float32(2), b.pointSize)

	for i := 0; i < len(Planets); i++ {
		orbit := b.calls[2+i]
		assert.Equal(t, "strip", orbit.op)
		assert.False(t, orbit.depth)
		assert.True(t, orbit.blend, "orbits are blended")
		assert.Equal(t, circleSegments+1, orbit.vertices)
	}
	assert.Equal(t, earthOrbit, b.calls[2+2].color)
	assert.Equal(t, marsOrbit, b.calls[2+3].color)
	assert.Equal(t, orbitColor, b.calls[2].color)

	sun := b.calls[2+len(Planets)]
	assert.Equal(t, "mesh", sun.op)
	assert.True(t, sun.depth)
	assert.Equal(t, sunColor, sun.color)

	assert.Equal(t, 1+len(Planets)+DefaultShips, b.count("mesh"))
	assert.Equal(t, len(Planets), b.count("lines"))
	assert.Equal(t, len(Planets)+2, b.count("strip"), "orbits, Saturn's ring and the route")
	assert.Equal(t, 1, b.count("points"))

	for _, c := range b.calls {
		switch c.op {
		case "mesh":
			assert.True(t, c.depth, "solid bodies use the depth test")
		case "lines":
			assert.False(t, c.depth, "labels are overlays")
			assert.True(t, c.blend)
			assert.Equal(t, labelColor, c.color)
		}
	}

	route := b.calls[len(b.calls)-1-DefaultShips]
	assert.Equal(t, "strip", route.op)
	assert.False(t, route.depth)
	assert.Equal(t, routeColor, route.color)
	assert.Equal(t, RouteSegments+1, route.vertices)
	for _, c := range b.calls[len(b.calls)-DefaultShips:] {
		assert.Equal(t, "mesh", c.op)
		assert.Equal(t, shipColor, c.color)
		assert.Equal(t, 8, c.vertices)
	}

	// Saturn's ring follows Saturn's sphere.
	for i, c := range b.calls {
		if c.color == Saturn.Color && c.op == "mesh" {
			assert.Equal(t, saturnRing, b.calls[i+1].color)
			assert.Equal(t, "strip", b.calls[i+1].op)
		}
	}
	assert.True(t, b.depth, "depth test is restored after the frame")
	assert.False(t, b.blend, "blending is restored after the frame")
}

func TestRendererTime(t *testing.T) {
	r, err := NewRenderer(testConfig())
	require.NoError(t, err)
	r.Init(&recorder{})
	phase := r.System().Phase(2)
	now := j2000
	require.NoError(t, r.Frame(now))
	assert.Zero(t, r.System().ElapsedHours(), "the first frame does not advance")
	require.NoError(t, r.Frame(now.Add(time.Second)))
	assert.InDelta(t, 24, r.System().ElapsedHours(), 1e-9)
	assert.InDelta(t, wrapAngle(phase+24*Earth.AngularVelocity()), r.System().Phase(2), 1e-9)
	// A clock going backwards does not rewind the simulation.
	require.NoError(t, r.Frame(now))
	assert.InDelta(t, 24, r.System().ElapsedHours(), 1e-9)
	assert.Equal(t, uint64(3), r.Frames())

	// Re-attaching restarts the frame clock.
	r.Release()
	r.Init(&recorder{})
	require.NoError(t, r.Frame(now.Add(time.Hour)))
	assert.InDelta(t, 24, r.System().ElapsedHours(), 1e-9)
}

func TestRendererCameraInput(t *testing.T) {
	r, err := NewRenderer(testConfig())
	require.NoError(t, err)
	r.Init(&recorder{})
	require.NoError(t, r.Frame(j2000))
	before := r.Camera()
	r.Controls().OnScale(2)
	require.NoError(t, r.Frame(j2000))
	assert.InDelta(t, before.Radius/2, r.Camera().Radius, 1e-9)

	earth := r.System().Position(2)
	mars := r.System().Position(3)
	exp := NewCamera(earth, mars, r.Controls().Snapshot())
	assert.Equal(t, exp.Eye, r.Camera().Eye)
	assert.Equal(t, BuildRoute(earth, mars, Mars.OrbitRadius).Length, r.Route().Length)
}

func TestRendererMetricsAndLogs(t *testing.T) {
	reg := prometheus.NewRegistry()
	var buf bytes.Buffer
	r, err := NewRenderer(testConfig(), WithMetrics(NewMetrics(reg)), WithLogger(kitlog.NewLogfmtLogger(&buf)))
	require.NoError(t, err)
	r.Init(&recorder{})
	require.NoError(t, r.Frame(j2000))
	require.NoError(t, r.Frame(j2000.Add(11*time.Second)))

	m := r.metrics
	assert.Equal(t, 2.0, testutil.ToFloat64(m.frames))
	assert.Equal(t, float64(2*(1+len(Planets)+DefaultShips)), testutil.ToFloat64(m.drawCalls.WithLabelValues(primTriangles)))
	assert.Equal(t, float64(2*len(Planets)), testutil.ToFloat64(m.drawCalls.WithLabelValues(primLines)))
	assert.Equal(t, r.Route().Length, testutil.ToFloat64(m.routeLength))

	logs := buf.String()
	assert.Contains(t, logs, "subsys=render")
	assert.Contains(t, logs, "status=ready")
	assert.True(t, strings.Contains(logs, "route(km)="), "periodic status is logged: %s", logs)
}

func TestRendererConfigErrors(t *testing.T) {
	conf := testConfig()
	conf.Ships = 0
	_, err := NewRenderer(conf)
	assert.Error(t, err)

	conf = testConfig()
	conf.VSOP87 = true
	conf.VSOP87Dir = t.TempDir()
	_, err = NewRenderer(conf)
	assert.Error(t, err, "VSOP87 files are missing")
}

func TestRendererDeterministic(t *testing.T) {
	a, err := NewRenderer(testConfig())
	require.NoError(t, err)
	b, err := NewRenderer(testConfig())
	require.NoError(t, err)
	for i := range Planets {
		assert.Equal(t, a.System().Phase(i), b.System().Phase(i))
	}
	assert.Equal(t, a.stars.Vertices, b.stars.Vertices)
}
