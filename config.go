package musclemap

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownGender is returned when a gender has no configured model.
var ErrUnknownGender = errors.New("musclemap: unknown gender")

// CameraConfig places the perspective camera.
type CameraConfig struct {
	// FOV is the vertical field of view in degrees.
	FOV      float64 `yaml:"fov"`
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
	Position Vec3    `yaml:"position"`
	Target   Vec3    `yaml:"target"`
}

// ModelConfig is the resting pose applied to every loaded model root.
type ModelConfig struct {
	OffsetY     float64 `yaml:"offset_y"`
	RestingTilt float64 `yaml:"resting_tilt"`
}

// OrbitConfig controls drag-to-rotate.
type OrbitConfig struct {
	// YawSpeed and PitchSpeed are radians per pixel of pointer movement.
	YawSpeed   float64 `yaml:"yaw_speed"`
	PitchSpeed float64 `yaml:"pitch_speed"`
	// PitchLimit bounds pitch to [-PitchLimit, PitchLimit].
	PitchLimit float64 `yaml:"pitch_limit"`
	// ClickSuppressDistance is how far, in pixels, the pointer may travel
	// between press and release before the release no longer counts as a
	// click. Negative disables suppression.
	ClickSuppressDistance float64 `yaml:"click_suppress_distance"`
}

// HighlightConfig holds the emissive colors used for selection feedback.
type HighlightConfig struct {
	Base  Color `yaml:"base"`
	Color Color `yaml:"color"`
}

// LightsConfig describes the ambient fill and the directional key light.
type LightsConfig struct {
	AmbientColor     Color   `yaml:"ambient_color"`
	AmbientIntensity float64 `yaml:"ambient_intensity"`
	KeyColor         Color   `yaml:"key_color"`
	KeyIntensity     float64 `yaml:"key_intensity"`
	KeyPosition      Vec3    `yaml:"key_position"`
}

// Config is the viewer configuration. The zero value is not usable; start
// from DefaultConfig or LoadConfig.
type Config struct {
	Gender Gender            `yaml:"gender"`
	Models map[Gender]string `yaml:"models"`
	// CatalogPath, when set, replaces the embedded muscle catalog.
	CatalogPath string `yaml:"catalog"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	ClearColor Color           `yaml:"clear_color"`
	Camera     CameraConfig    `yaml:"camera"`
	Model      ModelConfig     `yaml:"model"`
	Orbit      OrbitConfig     `yaml:"orbit"`
	Highlight  HighlightConfig `yaml:"highlight"`
	Lights     LightsConfig    `yaml:"lights"`

	// Logger receives load errors and debug output. Defaults to slog.Default().
	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Gender: GenderMale,
		Models: map[Gender]string{
			GenderMale:   "assets/male.glb",
			GenderFemale: "assets/female.glb",
		},
		Width:      800,
		Height:     600,
		ClearColor: Color{R: 0.07, G: 0.07, B: 0.09},
		Camera: CameraConfig{
			FOV:      45,
			Near:     40,
			Far:      9000,
			Position: Vec3{X: 0, Y: 100, Z: 450},
			Target:   Vec3{X: 0, Y: 100, Z: 0},
		},
		Model: ModelConfig{
			OffsetY:     0,
			RestingTilt: -0.5,
		},
		Orbit: OrbitConfig{
			YawSpeed:              0.01,
			PitchSpeed:            0.005,
			PitchLimit:            math.Pi / 6,
			ClickSuppressDistance: defaultDragDeadZone,
		},
		Highlight: HighlightConfig{
			Base:  ColorBlack,
			Color: Color{R: 1, G: 0.25, B: 0},
		},
		Lights: LightsConfig{
			AmbientColor:     ColorWhite,
			AmbientIntensity: 0.6,
			KeyColor:         ColorWhite,
			KeyIntensity:     0.8,
			KeyPosition:      Vec3{X: 200, Y: 400, Z: 300},
		},
	}
}

// LoadConfig reads a YAML file and overlays it on DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("musclemap: read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("musclemap: parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("musclemap: config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("camera fov %v out of range (0, 180)", c.Camera.FOV)
	case c.Camera.Near <= 0:
		return fmt.Errorf("camera near %v must be positive", c.Camera.Near)
	case c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("camera far %v must exceed near %v", c.Camera.Far, c.Camera.Near)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("surface size %dx%d must be positive", c.Width, c.Height)
	case c.Orbit.PitchLimit < 0:
		return fmt.Errorf("orbit pitch_limit %v must not be negative", c.Orbit.PitchLimit)
	case c.Lights.KeyPosition == (Vec3{}):
		return errors.New("lights key_position must not be the origin")
	}
	if _, err := c.ModelURL(c.Gender); err != nil {
		return err
	}
	return nil
}

// ModelURL returns the asset location configured for g.
func (c Config) ModelURL(g Gender) (string, error) {
	url, ok := c.Models[g]
	if !ok || url == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownGender, g)
	}
	return url, nil
}

func (c Config) logger() *slog.Logger {
	l := c.Logger
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", "musclemap")
}
