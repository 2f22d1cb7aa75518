package musclemap

// Material describes how a drawable's surface is shaded.
type Material interface {
	// MaterialName returns the authored material name.
	MaterialName() string
	// BaseColor returns the diffuse color.
	BaseColor() Color
	// Clone returns an independent copy. Mutating the copy never affects
	// the original or any other clone.
	Clone() Material
	// Dispose releases the material. Disposed materials are not drawn.
	Dispose()
}

// HasEmissiveChannel is implemented by materials with a self-illumination
// color. Only these materials take part in highlighting; others are skipped.
type HasEmissiveChannel interface {
	Emissive() Color
	SetEmissive(Color)
}

// StandardMaterial is a lit material with an emissive channel.
type StandardMaterial struct {
	Name     string
	Color    Color
	emissive Color
	disposed bool
}

// NewStandardMaterial creates a lit material with a black emissive channel.
func NewStandardMaterial(name string, c Color) *StandardMaterial {
	return &StandardMaterial{Name: name, Color: c}
}

func (m *StandardMaterial) MaterialName() string { return m.Name }
func (m *StandardMaterial) BaseColor() Color     { return m.Color }
func (m *StandardMaterial) Emissive() Color      { return m.emissive }
func (m *StandardMaterial) SetEmissive(c Color)  { m.emissive = c }
func (m *StandardMaterial) Dispose()             { m.disposed = true }

// IsDisposed reports whether Dispose has been called.
func (m *StandardMaterial) IsDisposed() bool { return m.disposed }

// Clone returns a copy with the same color and emissive values.
func (m *StandardMaterial) Clone() Material {
	c := *m
	c.disposed = false
	return &c
}

// BasicMaterial is an unlit material with no emissive channel.
type BasicMaterial struct {
	Name     string
	Color    Color
	disposed bool
}

// NewBasicMaterial creates an unlit material.
func NewBasicMaterial(name string, c Color) *BasicMaterial {
	return &BasicMaterial{Name: name, Color: c}
}

func (m *BasicMaterial) MaterialName() string { return m.Name }
func (m *BasicMaterial) BaseColor() Color     { return m.Color }
func (m *BasicMaterial) Dispose()             { m.disposed = true }

// IsDisposed reports whether Dispose has been called.
func (m *BasicMaterial) IsDisposed() bool { return m.disposed }

// Clone returns a copy with the same color.
func (m *BasicMaterial) Clone() Material {
	c := *m
	c.disposed = false
	return &c
}

// setEmissive writes c into every material of d that has an emissive
// channel. Returns the number of materials updated.
func setEmissive(d *Drawable, c Color) int {
	n := 0
	for _, m := range d.Materials {
		if em, ok := m.(HasEmissiveChannel); ok {
			em.SetEmissive(c)
			n++
		}
	}
	return n
}

// emissiveOf returns the emissive color of m, or black if m has no
// emissive channel.
func emissiveOf(m Material) Color {
	if em, ok := m.(HasEmissiveChannel); ok {
		return em.Emissive()
	}
	return ColorBlack
}
