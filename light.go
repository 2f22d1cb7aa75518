package musclemap

import "gonum.org/v1/gonum/spatial/r3"

// LightKind selects how a Light contributes to shading.
type LightKind uint8

const (
	LightAmbient     LightKind = iota // uniform fill
	LightDirectional                  // key light from a fixed direction
)

// Light is the payload of a NodeTypeLight node.
type Light struct {
	Kind      LightKind
	Color     Color
	Intensity float64
	// Direction points from the light toward the scene. Only used by
	// directional lights.
	Direction Vec3
}

// NewAmbientLight creates a uniform fill light node.
func NewAmbientLight(c Color, intensity float64) *Node {
	return NewLightNode("ambient_light", &Light{Kind: LightAmbient, Color: c, Intensity: intensity})
}

// NewDirectionalLight creates a directional key light node. Position is the
// light's location; it shines toward the origin. A light at the origin
// shines straight down.
func NewDirectionalLight(c Color, intensity float64, position Vec3) *Node {
	dir := Vec3{Y: -1}
	if position != (Vec3{}) {
		dir = r3.Unit(r3.Scale(-1, position))
	}
	n := NewLightNode("directional_light", &Light{Kind: LightDirectional, Color: c, Intensity: intensity, Direction: dir})
	n.Position = position
	return n
}

// lighting accumulates the scene's lights for flat shading.
type lighting struct {
	ambient     Color
	directional []Light
}

// collectLights walks the graph and gathers visible lights.
func collectLights(root *Node) lighting {
	var l lighting
	root.Traverse(func(n *Node) {
		if n.Type != NodeTypeLight || n.Light == nil || !n.Visible {
			return
		}
		switch n.Light.Kind {
		case LightAmbient:
			l.ambient = l.ambient.Add(n.Light.Color.Scale(n.Light.Intensity))
		case LightDirectional:
			l.directional = append(l.directional, *n.Light)
		}
	})
	return l
}

// shade returns the lit color of a face with world-space normal n.
func (l *lighting) shade(base, emissive Color, n Vec3) Color {
	c := base.Mul(l.ambient)
	for _, d := range l.directional {
		// Two-sided: flip the normal toward the light.
		ndl := r3.Dot(n, r3.Scale(-1, d.Direction))
		if ndl < 0 {
			ndl = -ndl
		}
		c = c.Add(base.Mul(d.Color).Scale(d.Intensity * ndl))
	}
	return c.Add(emissive)
}
