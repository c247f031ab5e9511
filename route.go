package gotomars

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats"
)

const (
	// RouteSegments is the number of Bézier samples of a route (points = segments + 1).
	RouteSegments = 128
	// coincidentDist below which Earth and Mars are considered at the same place.
	coincidentDist = 1e-5
	// originDist below which the Earth-Mars midpoint is considered at the origin.
	originDist = 1e-6
)

// RoutePath is an arc-length parameterized polyline in the ecliptic plane.
// Cumulative[i] is the path length from Points[0] to Points[i].
type RoutePath struct {
	Points     []mgl64.Vec3
	Cumulative []float64
	Length     float64
	Control    mgl64.Vec3 // Bézier control point
}

// ControlPoint returns the Bézier control point of the Earth to Mars route: the
// direction of the Earth-Mars midpoint seen from the Sun, scaled to Mars' orbit radius.
func ControlPoint(earth, mars mgl64.Vec3, marsOrbitRadius float64) mgl64.Vec3 {
	mid := mgl64.Vec3{0.5 * (earth[0] + mars[0]), 0, 0.5 * (earth[2] + mars[2])}
	dir := mid
	if planarNorm(dir) < originDist {
		dir = mgl64.Vec3{mars[0], 0, mars[2]}
	}
	n := planarNorm(dir)
	if n < originDist {
		n = originDist
	}
	return dir.Mul(marsOrbitRadius / n)
}

// BuildRoute returns the quadratic Bézier route from earth to mars, sampled into
// RouteSegments segments. The route is recomputed from scratch on every call.
func BuildRoute(earth, mars mgl64.Vec3, marsOrbitRadius float64) RoutePath {
	e := mgl64.Vec3{earth[0], 0, earth[2]}
	m := mgl64.Vec3{mars[0], 0, mars[2]}
	c := ControlPoint(e, m, marsOrbitRadius)

	if d := planarNorm(m.Sub(e)); d < coincidentDist {
		return RoutePath{Points: []mgl64.Vec3{e, m}, Cumulative: []float64{0, d}, Length: d, Control: c}
	}

	// B(t) = (1-t)²E + 2(1-t)tC + t²M
	pts := make([]mgl64.Vec3, RouteSegments+1)
	for i := range pts {
		t := float64(i) / RouteSegments
		omt := 1 - t
		b0, b1, b2 := omt*omt, 2*omt*t, t*t
		pts[i] = mgl64.Vec3{b0*e[0] + b1*c[0] + b2*m[0], 0, b0*e[2] + b1*c[2] + b2*m[2]}
	}
	segs := make([]float64, len(pts)) // segs[0] is 0 so that cum[0] is 0
	for i := 1; i < len(pts); i++ {
		segs[i] = planarNorm(pts[i].Sub(pts[i-1]))
	}
	cum := floats.CumSum(make([]float64, len(pts)), segs)
	return RoutePath{Points: pts, Cumulative: cum, Length: cum[len(cum)-1], Control: c}
}

// Sample returns the point at fraction u of the route's length, so that a constant
// rate of u is a constant speed along the curve.
func (r RoutePath) Sample(u float64) mgl64.Vec3 {
	n := len(r.Points)
	if n < 2 {
		return mgl64.Vec3{}
	}
	target := u * r.Length
	// First index i >= 1 such that Cumulative[i] >= target.
	i := 1 + sort.Search(n-1, func(k int) bool { return r.Cumulative[k+1] >= target })
	if i > n-1 {
		i = n - 1
	}
	d0, d1 := r.Cumulative[i-1], r.Cumulative[i]
	t := 0.0
	if d1 > d0 {
		t = (target - d0) / (d1 - d0)
	}
	return lerp(r.Points[i-1], r.Points[i], t)
}

// Float32s returns the route as xyz float32 vertices for a line strip.
func (r RoutePath) Float32s() []float32 {
	verts := make([]float32, 0, 3*len(r.Points))
	for _, p := range r.Points {
		verts = append(verts, float32(p[0]), float32(p[1]), float32(p[2]))
	}
	return verts
}
