package gotomars

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultYawSensitivity is the yaw change per dragged pixel, in radians.
	DefaultYawSensitivity = 0.004
	// DefaultPitchSensitivity is the pitch change per dragged pixel, in radians.
	DefaultPitchSensitivity = 0.003

	minPitch   = -80 * deg2rad
	maxPitch   = 80 * deg2rad
	minZoom    = 0.25
	maxZoom    = 4.0
	minScale   = 0.5 // per pinch event
	maxScale   = 2.0
	minCamDist = 1e-4
)

// CameraState is the user orbit control accumulated from gestures.
type CameraState struct {
	Yaw   float64 // radians added to the auto framing yaw
	Pitch float64 // radians added to the auto framing pitch, positive tilts up
	Zoom  float64 // distance multiplier, < 1 is closer
}

// Controls holds the CameraState shared between the input handlers and the render
// loop. It is safe for concurrent use.
type Controls struct {
	mu               sync.Mutex
	state            CameraState
	yawSensitivity   float64
	pitchSensitivity float64
}

// NewControls returns controls at the default framing with the given drag sensitivities.
func NewControls(yawSensitivity, pitchSensitivity float64) *Controls {
	return &Controls{state: CameraState{Zoom: 1}, yawSensitivity: yawSensitivity, pitchSensitivity: pitchSensitivity}
}

// OnDrag rotates the camera by a drag of (dx, dy) screen pixels. Dragging up looks up.
func (c *Controls) OnDrag(dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Yaw += dx * c.yawSensitivity
	c.state.Pitch += -dy * c.pitchSensitivity
}

// OnScale zooms by a pinch scale factor: > 1 moves the camera closer.
func (c *Controls) OnScale(factor float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Zoom /= clamp(factor, minScale, maxScale)
	c.state.Zoom = clamp(c.state.Zoom, minZoom, maxZoom)
}

// Snapshot returns a consistent copy of the current state.
func (c *Controls) Snapshot() CameraState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Camera is the per-frame camera: eye, target, the view transform and the
// world-space axes used to billboard labels.
type Camera struct {
	Eye, Target mgl64.Vec3
	Right, Up   mgl64.Vec3
	View        mgl64.Mat4
	Pitch       float64 // final pitch, radians
	Radius      float64 // final distance to the target
}

// NewCamera frames Earth with Mars in view and applies the user orbit state.
func NewCamera(earth, mars mgl64.Vec3, st CameraState) Camera {
	// Auto framing grows with the Earth-Mars separation.
	dist := math.Max(minCamDist, planarNorm(mars.Sub(earth)))
	back := 35 + dist*1.7
	height := 12 + dist*0.35

	target := mgl64.Vec3{earth[0], 0, earth[2]}
	base := mgl64.Vec3{0, height, back} // base eye - target

	baseRadius := math.Max(minCamDist, norm(base))
	yaw0 := math.Atan2(base[0], base[2]) // 0 faces +Z
	pitch0 := math.Atan2(base[1], math.Hypot(base[0], base[2]))

	yaw := yaw0 + st.Yaw
	pitch := clamp(pitch0+st.Pitch, minPitch, maxPitch)
	radius := baseRadius * clamp(st.Zoom, minZoom, maxZoom)

	sy, cy := math.Sincos(yaw)
	sp, cp := math.Sincos(pitch)
	h := radius * cp
	eye := target.Add(mgl64.Vec3{h * sy, radius * sp, h * cy})

	cam := Camera{Eye: eye, Target: target, View: LookAt(eye, target), Pitch: pitch, Radius: radius}
	cam.Right, cam.Up = billboardAxes(eye, target)
	return cam
}

// billboardAxes returns the camera right and up axes in world space.
func billboardAxes(eye, target mgl64.Vec3) (right, up mgl64.Vec3) {
	forward := unit(target.Sub(eye), worldUp, 1e-8)
	right = unit(forward.Cross(worldUp), xAxis, 1e-5)
	up = unit(right.Cross(forward), worldUp, 1e-8)
	return
}
