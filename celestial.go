package gotomars

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// KmPerUnit is the number of kilometers in one world unit.
	KmPerUnit = 1e7
	// SunRadius is the drawn radius of the Sun in world units (not to scale).
	SunRadius = 2.0
)

// Color is an RGBA color with components in [0, 1].
type Color [4]float32

// CelestialObject defines a planet orbiting the Sun on a circular orbit in the ecliptic.
type CelestialObject struct {
	Name         string
	OrbitRadius  float64 // world units
	PeriodDays   float64 // sidereal period
	VisualRadius float64 // world units, not to scale
	Color        Color
}

// AngularVelocity returns ω in radians per simulated hour.
func (c CelestialObject) AngularVelocity() float64 {
	return twoPi / (c.PeriodDays * 24)
}

// Position returns the heliocentric position of this object at the given phase.
func (c CelestialObject) Position(phase float64) mgl64.Vec3 {
	s, co := math.Sincos(phase)
	return mgl64.Vec3{c.OrbitRadius * co, 0, c.OrbitRadius * s}
}

// Initial returns the first letter of the name, used as its label.
func (c CelestialObject) Initial() rune {
	for _, r := range c.Name {
		return r
	}
	return '?'
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// CelestialObjectFromString returns the object from its name
func CelestialObjectFromString(name string) (CelestialObject, error) {
	for _, p := range Planets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return CelestialObject{}, fmt.Errorf("undefined planet '%s'", name)
}

func kmOrbit(km float64) float64 {
	return km / KmPerUnit
}

/* Definitions: mean orbital radius (km) and sidereal period (days). */

// Mercury is fast.
var Mercury = CelestialObject{"Mercury", kmOrbit(57909050), 87.969, 0.18, Color{0.8, 0.8, 0.7, 1}}

// Venus is poisonous.
var Venus = CelestialObject{"Venus", kmOrbit(108208000), 224.701, 0.45, Color{1, 0.8, 0.4, 1}}

// Earth is home.
var Earth = CelestialObject{"Earth", kmOrbit(149597870), 365.256, 0.6, Color{0.2, 0.7, 1, 1}}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", kmOrbit(227939200), 686.971, 0.5, Color{1, 0.4, 0.3, 1}}

// Jupiter is big.
var Jupiter = CelestialObject{"Jupiter", kmOrbit(778570000), 4332.59, 1.2, Color{0.9, 0.7, 0.5, 1}}

// Saturn floats and that's really cool.
var Saturn = CelestialObject{"Saturn", kmOrbit(1433530000), 10759.22, 1.1, Color{0.9, 0.8, 0.6, 1}}

// Uranus is no joke.
var Uranus = CelestialObject{"Uranus", kmOrbit(2872460000), 30685.4, 0.9, Color{0.7, 0.9, 1, 1}}

// Neptune is far.
var Neptune = CelestialObject{"Neptune", kmOrbit(4495060000), 60190, 0.9, Color{0.5, 0.7, 1, 1}}

// Planets lists the simulated planets ordered by distance to the Sun.
var Planets = []CelestialObject{Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Neptune}
