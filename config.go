package gotomars

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the configuration of the simulation, the camera and the renderer.
type Config struct {
	HoursPerSecond   float64   // simulated hours per wall clock second
	Seed             int64     // initial phases seed, 0 uses the clock
	Epoch            time.Time // simulated start date, zero uses the clock
	VSOP87           bool      // seed the phases from the VSOP87 ephemeris
	VSOP87Dir        string
	Ships            int
	ShipSpeedKmh     float64
	YawSensitivity   float64 // radians per pixel
	PitchSensitivity float64 // radians per pixel
	FOV              float64 // vertical field of view in degrees
	Stars            int
	StarRadius       float64
	StarSeed         uint64
	MetricsListen    string // address of the /metrics endpoint, empty disables it
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		HoursPerSecond:   24,
		Ships:            DefaultShips,
		ShipSpeedKmh:     DefaultShipSpeed,
		YawSensitivity:   DefaultYawSensitivity,
		PitchSensitivity: DefaultPitchSensitivity,
		FOV:              60,
		Stars:            1500,
		StarRadius:       800,
		StarSeed:         42,
	}
}

// Validate returns an error if the configuration cannot be simulated.
func (c Config) Validate() error {
	if c.HoursPerSecond <= 0 {
		return fmt.Errorf("sim.hours_per_second must be positive, got %f", c.HoursPerSecond)
	}
	if c.Ships <= 0 {
		return fmt.Errorf("fleet.ships must be positive, got %d", c.Ships)
	}
	if c.ShipSpeedKmh < 0 {
		return fmt.Errorf("fleet.speed_kmh must not be negative, got %f", c.ShipSpeedKmh)
	}
	if c.Stars <= 0 || c.StarRadius <= 0 {
		return fmt.Errorf("stars.count (%d) and stars.radius (%f) must be positive", c.Stars, c.StarRadius)
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		return fmt.Errorf("camera.fov must be in (0, 180), got %f", c.FOV)
	}
	if c.VSOP87 && c.VSOP87Dir == "" {
		return errors.New("vsop87.enabled requires vsop87.directory")
	}
	return nil
}

// LoadConfig reads conf.toml from the provided directory. Missing keys keep their
// default value.
func LoadConfig(dir string) (Config, error) {
	def := DefaultConfig()
	v := viper.New()
	v.SetDefault("sim.hours_per_second", def.HoursPerSecond)
	v.SetDefault("sim.seed", def.Seed)
	v.SetDefault("fleet.ships", def.Ships)
	v.SetDefault("fleet.speed_kmh", def.ShipSpeedKmh)
	v.SetDefault("camera.yaw_sensitivity", def.YawSensitivity)
	v.SetDefault("camera.pitch_sensitivity", def.PitchSensitivity)
	v.SetDefault("camera.fov", def.FOV)
	v.SetDefault("stars.count", def.Stars)
	v.SetDefault("stars.radius", def.StarRadius)
	v.SetDefault("stars.seed", def.StarSeed)

	v.SetConfigName("conf")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%s/conf.toml: %w", dir, err)
	}

	conf := Config{
		HoursPerSecond:   v.GetFloat64("sim.hours_per_second"),
		Seed:             v.GetInt64("sim.seed"),
		VSOP87:           v.GetBool("vsop87.enabled"),
		VSOP87Dir:        v.GetString("vsop87.directory"),
		Ships:            v.GetInt("fleet.ships"),
		ShipSpeedKmh:     v.GetFloat64("fleet.speed_kmh"),
		YawSensitivity:   v.GetFloat64("camera.yaw_sensitivity"),
		PitchSensitivity: v.GetFloat64("camera.pitch_sensitivity"),
		FOV:              v.GetFloat64("camera.fov"),
		Stars:            v.GetInt("stars.count"),
		StarRadius:       v.GetFloat64("stars.radius"),
		StarSeed:         v.GetUint64("stars.seed"),
		MetricsListen:    v.GetString("metrics.listen"),
	}
	if v.IsSet("sim.epoch") {
		epoch, err := time.Parse(time.RFC3339, v.GetString("sim.epoch"))
		if err != nil {
			return Config{}, fmt.Errorf("sim.epoch: %w", err)
		}
		conf.Epoch = epoch.UTC()
	}
	return conf, conf.Validate()
}
