package gotomars

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestCelestialObject(t *testing.T) {
	for _, object := range Planets {
		ω := object.AngularVelocity()
		if !scalar.EqualWithinRel(ω*object.PeriodDays*24, 2*math.Pi, 1e-12) {
			t.Fatalf("ω=%f does not complete an orbit in one period for %s", ω, object)
		}
		for _, phase := range []float64{0, math.Pi / 3, math.Pi, 5} {
			p := object.Position(phase)
			if p[1] != 0 {
				t.Fatalf("%s left the ecliptic: %v", object, p)
			}
			if !scalar.EqualWithinRel(planarNorm(p), object.OrbitRadius, 1e-12) {
				t.Fatalf("%s not on its orbit: %v", object, p)
			}
		}
		if object.Initial() != rune(object.Name[0]) {
			t.Fatalf("wrong initial for %s", object)
		}
	}
	if !scalar.EqualWithinAbs(Earth.OrbitRadius, 14.959787, 1e-9) {
		t.Fatalf("Earth orbit radius %f", Earth.OrbitRadius)
	}
	if !scalar.EqualWithinAbs(Mars.OrbitRadius, 22.79392, 1e-9) {
		t.Fatalf("Mars orbit radius %f", Mars.OrbitRadius)
	}
	if (CelestialObject{}).Initial() != '?' {
		t.Fatal("empty name should have a placeholder initial")
	}
}

func TestCelestialObjectFromString(t *testing.T) {
	for _, name := range []string{"mars", "MARS", "Mars"} {
		obj, err := CelestialObjectFromString(name)
		if err != nil || obj.Name != Mars.Name {
			t.Fatalf("could not find %s: %v", name, err)
		}
	}
	if _, err := CelestialObjectFromString("Pluto"); err == nil {
		t.Fatal("Pluto is not a planet")
	}
}
