package musclemap

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, GenderMale, cfg.Gender)
	assert.Equal(t, math.Pi/6, cfg.Orbit.PitchLimit)
	assert.Equal(t, defaultDragDeadZone, cfg.Orbit.ClickSuppressDistance)
}

func TestModelURL(t *testing.T) {
	cfg := DefaultConfig()
	url, err := cfg.ModelURL(GenderFemale)
	require.NoError(t, err)
	assert.Equal(t, "assets/female.glb", url)

	_, err = cfg.ModelURL("robot")
	assert.True(t, errors.Is(err, ErrUnknownGender))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"fov", func(c *Config) { c.Camera.FOV = 0 }, "fov"},
		{"near", func(c *Config) { c.Camera.Near = -1 }, "near"},
		{"far", func(c *Config) { c.Camera.Far = c.Camera.Near }, "far"},
		{"size", func(c *Config) { c.Width = 0 }, "surface size"},
		{"pitch", func(c *Config) { c.Orbit.PitchLimit = -1 }, "pitch_limit"},
		{"gender", func(c *Config) { c.Gender = "robot" }, "unknown gender"},
		{"key light", func(c *Config) { c.Lights.KeyPosition = Vec3{} }, "key_position"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	data := []byte(`
gender: female
models:
  female: https://cdn.example.com/female.glb
width: 1280
orbit:
  pitch_limit: 0.3
highlight:
  color: {r: 0, g: 1, b: 0}
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, GenderFemale, cfg.Gender)
	assert.Equal(t, "https://cdn.example.com/female.glb", cfg.Models[GenderFemale])
	assert.Equal(t, "assets/male.glb", cfg.Models[GenderMale], "unset map entries keep defaults")
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, 0.3, cfg.Orbit.PitchLimit)
	assert.Equal(t, 0.01, cfg.Orbit.YawSpeed)
	assert.Equal(t, Color{G: 1}, cfg.Highlight.Color)
	assert.Equal(t, 45.0, cfg.Camera.FOV)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("width: ["), 0o644))
	_, err = LoadConfig(bad)
	assert.ErrorContains(t, err, "parse config")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("camera:\n  fov: 200\n"), 0o644))
	_, err = LoadConfig(invalid)
	assert.ErrorContains(t, err, "fov")
}
