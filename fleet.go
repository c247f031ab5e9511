package gotomars

import (
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultShips is the number of ships flying between Earth and Mars.
	DefaultShips = 24
	// DefaultShipSpeed is the cruise speed of every ship in km/h.
	DefaultShipSpeed = 100000.0
	// ShipSize is the drawn size of a ship cube in world units.
	ShipSize = 0.2
	// minRouteLength below which ships hold their progress.
	minRouteLength = 1e-6
)

// Fleet is a fixed pool of ships travelling along the route at a common real speed.
type Fleet struct {
	progress []float64 // fraction of the route in [0, 1)
	speed    float64   // world units per simulated hour
}

// NewFleet returns n ships evenly spaced along the route, flying at speedKmh.
func NewFleet(n int, speedKmh float64) *Fleet {
	f := &Fleet{progress: make([]float64, n), speed: speedKmh / KmPerUnit}
	for i := range f.progress {
		f.progress[i] = float64(i) / float64(n)
	}
	return f
}

// Len returns the number of ships.
func (f *Fleet) Len() int {
	return len(f.progress)
}

// Progress returns the route fraction of the i-th ship.
func (f *Fleet) Progress(i int) float64 {
	return f.progress[i]
}

// Delta returns the route fraction covered in dtHours along the provided route.
// Dividing by the route length keeps the speed independent of the Earth-Mars distance.
func (f *Fleet) Delta(route RoutePath, dtHours float64) float64 {
	if route.Length <= minRouteLength {
		return 0
	}
	return f.speed * dtHours / route.Length
}

// Advance moves every ship forward along the route and wraps them back to Earth.
func (f *Fleet) Advance(route RoutePath, dtHours float64) {
	du := f.Delta(route, dtHours)
	for i, u := range f.progress {
		f.progress[i] = wrapUnit(u + du)
	}
}

// Positions returns the world position of every ship on the route.
func (f *Fleet) Positions(route RoutePath) []mgl64.Vec3 {
	pos := make([]mgl64.Vec3, len(f.progress))
	for i, u := range f.progress {
		pos[i] = route.Sample(u)
	}
	return pos
}
