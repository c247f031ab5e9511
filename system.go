package gotomars

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ChristopherRabotin/ode"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/soniakeys/meeus/v3/julian"
)

/* Handles the orbital kinematics of the planets. */

// System holds the phase of every planet and advances them in simulated time.
// Orbits are circular: each phase grows at the constant rate of its body.
type System struct {
	Bodies  []CelestialObject
	phases  []float64
	omegas  []float64
	start   time.Time
	elapsed float64 // simulated hours since start
	step    float64 // current integration step, in hours
	pending bool    // an integration step is requested
}

// NewSystem returns a new System with the provided initial phases (radians).
func NewSystem(bodies []CelestialObject, phases []float64, start time.Time) *System {
	if len(phases) != len(bodies) {
		panic(fmt.Errorf("%d phases provided for %d bodies", len(phases), len(bodies)))
	}
	s := &System{Bodies: bodies, phases: make([]float64, len(bodies)), omegas: make([]float64, len(bodies)), start: start.UTC()}
	for i, b := range bodies {
		s.phases[i] = wrapAngle(phases[i])
		s.omegas[i] = b.AngularVelocity()
	}
	return s
}

// RandomPhases returns n phases drawn uniformly in [0, 2π) from the provided seed.
func RandomPhases(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	phases := make([]float64, n)
	for i := range phases {
		phases[i] = rng.Float64() * twoPi
	}
	return phases
}

// Advance moves every body forward by dtHours of simulated time.
func (s *System) Advance(dtHours float64) {
	if dtHours <= 0 {
		return
	}
	s.step = dtHours
	s.pending = true
	ode.NewRK4(0, dtHours, s).Solve() // Blocking, one step.
	s.elapsed += dtHours
}

// GetState returns the phases for the integrator.
func (s *System) GetState() []float64 {
	state := make([]float64, len(s.phases))
	copy(state, s.phases)
	return state
}

// SetState sets the integrated phases, wrapped into [0, 2π).
func (s *System) SetState(t float64, state []float64) {
	for i, a := range state {
		s.phases[i] = wrapAngle(a)
	}
	s.pending = false
}

// Stop implements the stop call of the integrator: exactly one step per Advance.
func (s *System) Stop(t float64) bool {
	return !s.pending
}

// Func is the phase rate: dθ/dt = ω.
func (s *System) Func(t float64, state []float64) []float64 {
	fDot := make([]float64, len(state))
	copy(fDot, s.omegas)
	return fDot
}

// Phase returns the current phase of the i-th body.
func (s *System) Phase(i int) float64 {
	return s.phases[i]
}

// Position returns the current position of the i-th body.
func (s *System) Position(i int) mgl64.Vec3 {
	return s.Bodies[i].Position(s.phases[i])
}

// Positions returns the current position of every body, in order.
func (s *System) Positions() []mgl64.Vec3 {
	pos := make([]mgl64.Vec3, len(s.Bodies))
	for i := range s.Bodies {
		pos[i] = s.Position(i)
	}
	return pos
}

// Index returns the index of the named body, or -1.
func (s *System) Index(name string) int {
	for i, b := range s.Bodies {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// ElapsedHours returns the simulated hours since the start.
func (s *System) ElapsedHours() float64 {
	return s.elapsed
}

// Epoch returns the simulated date.
func (s *System) Epoch() time.Time {
	return s.start.Add(time.Duration(s.elapsed * float64(time.Hour)))
}

// JD returns the simulated date as a Julian day.
func (s *System) JD() float64 {
	return julian.TimeToJD(s.Epoch())
}
