package gotomars

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	kitlog "github.com/go-kit/kit/log"
)

const (
	nearPlane      = 0.1
	farPlane       = 3000
	sphereStacks   = 48
	sphereSlices   = 64
	circleSegments = 512
	statusPeriod   = 10 * time.Second
)

var (
	starColor      = Color{0.85, 0.85, 1, 1}
	orbitColor     = Color{0.6, 0.6, 0.6, 1}
	earthOrbit     = Color{0.3, 0.6, 1, 1}
	marsOrbit      = Color{1, 0.5, 0.3, 1}
	sunColor       = Color{1, 0.95, 0.4, 1}
	saturnRing     = Color{0.9, 0.8, 0.6, 0.7}
	labelColor     = Color{1, 1, 1, 1}
	routeColor     = Color{1, 1, 0.2, 1}
	shipColor      = Color{0.95, 0.95, 1, 1}
	errNotReady    = errors.New("renderer has no backend")
	errNoEarthMars = errors.New("Earth and Mars must both be simulated")
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger of the renderer.
func WithLogger(logger kitlog.Logger) Option {
	return func(r *Renderer) {
		r.logger = kitlog.With(logger, "subsys", "render")
	}
}

// WithMetrics sets the metrics of the renderer.
func WithMetrics(m *Metrics) Option {
	return func(r *Renderer) {
		r.metrics = m
	}
}

// WithControls shares existing controls, e.g. to keep the user framing across
// renderer instances.
func WithControls(c *Controls) Option {
	return func(r *Renderer) {
		r.controls = c
	}
}

// Renderer runs the simulation and draws each frame. It must be used from a single
// goroutine; only its Controls may be used concurrently.
type Renderer struct {
	conf     Config
	logger   kitlog.Logger
	metrics  *Metrics
	backend  Backend
	controls *Controls

	sys         *System
	earth, mars int
	fleet       *Fleet

	sphere, cube  *Mesh
	circle, stars *Polyline

	proj  mgl64.Mat4
	vp    mgl64.Mat4
	route RoutePath
	cam   Camera

	last, lastStatus time.Time
	frames           uint64
}

// NewRenderer returns a renderer with the simulation and geometry built, ready to
// be attached to a backend with Init.
func NewRenderer(conf Config, opts ...Option) (*Renderer, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	r := &Renderer{conf: conf, logger: kitlog.NewNopLogger(), proj: mgl64.Ident4()}
	for _, opt := range opts {
		opt(r)
	}
	if r.controls == nil {
		r.controls = NewControls(conf.YawSensitivity, conf.PitchSensitivity)
	}

	epoch := conf.Epoch
	if epoch.IsZero() {
		epoch = time.Now().UTC()
	}
	var phases []float64
	if conf.VSOP87 {
		var err error
		if phases, err = EphemerisPhases(Planets, conf.VSOP87Dir, epoch); err != nil {
			return nil, fmt.Errorf("ephemeris: %w", err)
		}
	} else {
		seed := conf.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		phases = RandomPhases(len(Planets), seed)
	}
	r.sys = NewSystem(Planets, phases, epoch)
	r.earth, r.mars = r.sys.Index(Earth.Name), r.sys.Index(Mars.Name)
	if r.earth < 0 || r.mars < 0 {
		return nil, errNoEarthMars
	}
	r.fleet = NewFleet(conf.Ships, conf.ShipSpeedKmh)

	r.sphere = Sphere(1, sphereStacks, sphereSlices)
	r.circle = Circle(circleSegments)
	r.cube = Cube(1)
	r.stars = StarField(conf.Stars, conf.StarRadius, conf.StarSeed)

	r.Step(0)
	r.logger.Log("level", "info", "epoch", epoch, "jd", r.sys.JD(), "ships", r.fleet.Len(), "stars", r.stars.VertexCount(), "vsop87", conf.VSOP87)
	return r, nil
}

// Init attaches the backend: the renderer is ready to draw.
func (r *Renderer) Init(b Backend) {
	r.backend = b
	r.last = time.Time{}
	r.logger.Log("level", "info", "status", "ready")
}

// Release detaches the backend, e.g. when the surface is no longer visible.
// The simulation and the camera controls are kept.
func (r *Renderer) Release() {
	r.backend = nil
	r.logger.Log("level", "info", "status", "released")
}

// Ready returns whether a backend is attached.
func (r *Renderer) Ready() bool {
	return r.backend != nil
}

// Resize sets the viewport and the projection for a surface of the given size.
func (r *Renderer) Resize(width, height int) {
	aspect := float64(width) / math.Max(1, float64(height))
	r.proj = Perspective(r.conf.FOV, aspect, nearPlane, farPlane)
	r.vp = r.proj.Mul4(r.cam.View)
	if r.backend != nil {
		r.backend.Viewport(width, height)
	}
	r.logger.Log("level", "info", "width", width, "height", height)
}

// Controls returns the camera controls to feed input gestures into.
func (r *Renderer) Controls() *Controls {
	return r.controls
}

// System returns the simulated planets.
func (r *Renderer) System() *System {
	return r.sys
}

// Fleet returns the ships.
func (r *Renderer) Fleet() *Fleet {
	return r.fleet
}

// Route returns the route of the last step.
func (r *Renderer) Route() RoutePath {
	return r.route
}

// Camera returns the camera of the last step.
func (r *Renderer) Camera() Camera {
	return r.cam
}

// Frames returns the number of frames drawn.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// Step advances the simulation by dtHours and recomputes the route, the ships and
// the camera from the new positions.
func (r *Renderer) Step(dtHours float64) {
	r.sys.Advance(dtHours)
	earth, mars := r.sys.Position(r.earth), r.sys.Position(r.mars)
	r.route = BuildRoute(earth, mars, r.sys.Bodies[r.mars].OrbitRadius)
	r.fleet.Advance(r.route, dtHours)
	r.cam = NewCamera(earth, mars, r.controls.Snapshot())
	r.vp = r.proj.Mul4(r.cam.View)
}

// Frame advances the simulation by the wall clock time since the previous frame
// and draws it.
func (r *Renderer) Frame(now time.Time) error {
	if r.backend == nil {
		return errNotReady
	}
	start := time.Now()
	dt := 0.0
	if !r.last.IsZero() {
		dt = math.Max(0, now.Sub(r.last).Seconds())
	}
	r.last = now
	r.Step(dt * r.conf.HoursPerSecond)
	r.draw()
	r.frames++
	r.metrics.RecordFrame(time.Since(start), r.route.Length)
	if r.lastStatus.IsZero() {
		r.lastStatus = now
	} else if now.Sub(r.lastStatus) >= statusPeriod {
		r.lastStatus = now
		r.LogStatus()
	}
	return nil
}

// LogStatus logs the state of the simulation.
func (r *Renderer) LogStatus() {
	dist := planarNorm(r.sys.Position(r.mars).Sub(r.sys.Position(r.earth)))
	r.logger.Log("level", "info", "frames", r.frames, "days", r.sys.ElapsedHours()/24, "jd", r.sys.JD(), "earth-mars(km)", dist*KmPerUnit, "route(km)", r.route.Length*KmPerUnit)
}

func (r *Renderer) draw() {
	b := r.backend
	b.Clear()

	// Stars, orbits, labels and the route are overlays: always drawn on top.
	b.SetDepthTest(false)
	r.setTransform(mgl64.Ident4(), starColor)
	b.SetPointSize(2)
	b.DrawPoints(r.stars.Vertices)
	r.metrics.RecordDraw(primPoints)

	for i, body := range r.sys.Bodies {
		col := orbitColor
		switch i {
		case r.earth:
			col = earthOrbit
		case r.mars:
			col = marsOrbit
		}
		r.setTransform(mgl64.Scale3D(body.OrbitRadius, 1, body.OrbitRadius), col)
		b.SetBlend(true)
		b.SetLineWidth(1)
		b.DrawLineStrip(r.circle.Vertices)
		r.metrics.RecordDraw(primLineStrip)
		b.SetBlend(false)
	}
	b.SetDepthTest(true)

	r.drawMesh(r.sphere, mgl64.Vec3{}, SunRadius, sunColor)

	for i, body := range r.sys.Bodies {
		pos := r.sys.Position(i)
		r.drawMesh(r.sphere, pos, body.VisualRadius, body.Color)
		if body.Name == Saturn.Name {
			ring := 3 * body.VisualRadius
			r.setTransform(Model(pos, mgl64.Vec3{ring, 1, ring}), saturnRing)
			b.DrawLineStrip(r.circle.Vertices)
			r.metrics.RecordDraw(primLineStrip)
		}
		r.drawLabel(body, pos)
	}

	if len(r.route.Points) >= 2 {
		b.SetDepthTest(false)
		r.setTransform(mgl64.Ident4(), routeColor)
		b.SetLineWidth(2)
		b.DrawLineStrip(r.route.Float32s())
		r.metrics.RecordDraw(primLineStrip)
		b.SetDepthTest(true)
	}

	for _, p := range r.fleet.Positions(r.route) {
		r.drawMesh(r.cube, p, ShipSize, shipColor)
	}
}

func (r *Renderer) setTransform(model mgl64.Mat4, c Color) {
	r.backend.SetMVP(r.vp.Mul4(model))
	r.backend.SetColor(c)
}

func (r *Renderer) drawMesh(m *Mesh, pos mgl64.Vec3, scale float64, c Color) {
	r.setTransform(Model(pos, mgl64.Vec3{scale, scale, scale}), c)
	r.backend.DrawMesh(m)
	r.metrics.RecordDraw(primTriangles)
}

func (r *Renderer) drawLabel(body CelestialObject, pos mgl64.Vec3) {
	verts := Billboard(body.Initial(), pos, body.VisualRadius*0.9, body.VisualRadius*1.3, r.cam.Right, r.cam.Up)
	b := r.backend
	r.setTransform(mgl64.Ident4(), labelColor)
	b.SetDepthTest(false)
	b.SetBlend(true)
	b.SetLineWidth(2)
	b.DrawLines(verts)
	r.metrics.RecordDraw(primLines)
	b.SetBlend(false)
	b.SetDepthTest(true)
}
