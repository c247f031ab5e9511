package gotomars

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConf(t *testing.T, content string) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "conf.toml"), []byte(content), 0o644))
	return dir
}

func TestDefaultConfig(t *testing.T) {
	conf := DefaultConfig()
	require.NoError(t, conf.Validate())
	assert.Equal(t, 24.0, conf.HoursPerSecond)
	assert.Equal(t, 24, conf.Ships)
	assert.Equal(t, uint64(42), conf.StarSeed)
}

func TestLoadConfig(t *testing.T) {
	dir := writeConf(t, `
[sim]
hours_per_second = 48
seed = 7
epoch = "2020-07-30T11:50:00Z"

[fleet]
ships = 12

[metrics]
listen = ":9100"
`)
	conf, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 48.0, conf.HoursPerSecond)
	assert.Equal(t, int64(7), conf.Seed)
	assert.Equal(t, 12, conf.Ships)
	assert.Equal(t, ":9100", conf.MetricsListen)
	assert.True(t, conf.Epoch.Equal(time.Date(2020, 7, 30, 11, 50, 0, 0, time.UTC)))
	// Defaults for what is not in the file.
	assert.Equal(t, DefaultShipSpeed, conf.ShipSpeedKmh)
	assert.Equal(t, 1500, conf.Stars)
	assert.Equal(t, 60.0, conf.FOV)
	assert.False(t, conf.VSOP87)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err, "missing conf.toml")

	_, err = LoadConfig(writeConf(t, "[fleet]\nships = 0\n"))
	assert.Error(t, err, "no ships")

	_, err = LoadConfig(writeConf(t, "[vsop87]\nenabled = true\n"))
	assert.Error(t, err, "VSOP87 without a directory")

	_, err = LoadConfig(writeConf(t, "[sim]\nepoch = \"yesterday\"\n"))
	assert.Error(t, err, "invalid epoch")
}

func TestValidate(t *testing.T) {
	for name, mut := range map[string]func(*Config){
		"time scale": func(c *Config) { c.HoursPerSecond = 0 },
		"speed":      func(c *Config) { c.ShipSpeedKmh = -1 },
		"stars":      func(c *Config) { c.Stars = 0 },
		"radius":     func(c *Config) { c.StarRadius = -2 },
		"fov":        func(c *Config) { c.FOV = 180 },
	} {
		conf := DefaultConfig()
		mut(&conf)
		assert.Error(t, conf.Validate(), name)
	}
}
