package gotomars

import (
	"fmt"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/planetposition"
)

// vsop87Index returns the VSOP87 body number (Mercury is 0) of the given planet.
func vsop87Index(name string) (int, error) {
	switch name {
	case "Mercury":
		return 0, nil
	case "Venus":
		return 1, nil
	case "Earth":
		return 2, nil
	case "Mars":
		return 3, nil
	case "Jupiter":
		return 4, nil
	case "Saturn":
		return 5, nil
	case "Uranus":
		return 6, nil
	case "Neptune":
		return 7, nil
	default:
		return -1, fmt.Errorf("unknown object: %s", name)
	}
}

// EphemerisPhases returns the heliocentric ecliptic longitude of each body at the
// provided date, computed from the VSOP87 files in dir. The longitude becomes the
// orbital phase, so the simulation starts with the real planetary configuration.
func EphemerisPhases(bodies []CelestialObject, dir string, dt time.Time) ([]float64, error) {
	jde := julian.TimeToJD(dt.UTC())
	phases := make([]float64, len(bodies))
	for i, b := range bodies {
		ibody, err := vsop87Index(b.Name)
		if err != nil {
			return nil, err
		}
		planet, err := planetposition.LoadPlanetPath(ibody, dir)
		if err != nil {
			return nil, fmt.Errorf("could not load planet number %d: %w", ibody+1, err)
		}
		l, _, _ := planet.Position2000(jde)
		phases[i] = wrapAngle(l.Rad())
	}
	return phases, nil
}
