package gotomars

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	deg2rad = math.Pi / 180
	twoPi   = 2 * math.Pi
)

var (
	worldUp = mgl64.Vec3{0, 1, 0}
	xAxis   = mgl64.Vec3{1, 0, 0}
)

// norm returns the norm of a given vector.
func norm(v mgl64.Vec3) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// planarNorm returns the norm of the ecliptic (x, z) components only.
func planarNorm(v mgl64.Vec3) float64 {
	return math.Hypot(v[0], v[2])
}

// unit returns the unit vector of a given vector, or the fallback if the vector is
// shorter than eps.
func unit(v, fallback mgl64.Vec3, eps float64) mgl64.Vec3 {
	n := norm(v)
	if n < eps {
		return fallback
	}
	return v.Mul(1 / n)
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// lerp linearly interpolates between a and b.
func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// wrapAngle maps a into [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		// math.Mod of a tiny negative number can round up to exactly 2π.
		a = 0
	}
	return a
}

// wrapUnit maps u into [0, 1).
func wrapUnit(u float64) float64 {
	u = math.Mod(u, 1)
	if u < 0 {
		u++
	}
	if u >= 1 {
		u = 0
	}
	return u
}

// nearZero returns whether v is within eps of zero.
func nearZero(v, eps float64) bool {
	return scalar.EqualWithinAbs(v, 0, eps)
}

// Model returns the translate-then-scale model matrix used by every draw.
func Model(position, scale mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(position[0], position[1], position[2]).Mul4(mgl64.Scale3D(scale[0], scale[1], scale[2]))
}

// LookAt returns the view matrix from eye towards target with +Y as world up.
func LookAt(eye, target mgl64.Vec3) mgl64.Mat4 {
	return mgl64.LookAtV(eye, target, worldUp)
}

// Perspective returns the projection for a vertical field of view given in degrees.
func Perspective(fovDeg, aspect, near, far float64) mgl64.Mat4 {
	return mgl64.Perspective(fovDeg*deg2rad, aspect, near, far)
}

// Float32s returns the column-major float32 layout of m expected by GL uniforms.
func Float32s(m mgl64.Mat4) [16]float32 {
	var o [16]float32
	for i, v := range m {
		o[i] = float32(v)
	}
	return o
}
