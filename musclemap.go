package musclemap

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

// Color represents an RGB color with components in [0, 1]. Used for material
// base colors, emissive channels, and light colors.
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
}

// ColorBlack is the default emissive color (no self-illumination).
var ColorBlack = Color{}

// ColorWhite is the default base color and light color.
var ColorWhite = Color{1, 1, 1}

// Add returns the component-wise sum of c and o.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Mul returns the component-wise product of c and o.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Scale returns c with every component multiplied by f.
func (c Color) Scale(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f}
}

// RGBA converts c to an opaque color.RGBA, clamping each channel to [0, 1].
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: 255,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec3 is the vector type used for positions, directions, and Euler angles.
type Vec3 = r3.Vec

// NodeType distinguishes the variant carried by a Node.
type NodeType uint8

const (
	NodeTypeGroup    NodeType = iota // structural node with no visual output
	NodeTypeDrawable                 // mesh with geometry, materials, and muscle metadata
	NodeTypeLight                    // ambient or directional light
	NodeTypeCamera                   // camera placeholder imported from an asset
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeGroup:
		return "group"
	case NodeTypeDrawable:
		return "drawable"
	case NodeTypeLight:
		return "light"
	case NodeTypeCamera:
		return "camera"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of registered callback.
type EventType uint8

const (
	EventPointerDown EventType = iota // fires when the pointer is pressed
	EventPointerUp                    // fires when the pointer is released
	EventPointerMove                  // fires on every pointer move
	EventClick                        // fires on release when the gesture counts as a click
	EventResize                       // fires after the render surface is resized
)

// Gender selects which model variant the viewer loads.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)
