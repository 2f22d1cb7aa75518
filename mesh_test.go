package musclemap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- NewGeometry ---

func TestNewGeometryNonIndexed(t *testing.T) {
	ps := []Vec3{{}, {X: 1}, {Y: 1}, {}, {X: 1}, {Z: 1}}
	g := NewGeometry(ps, nil)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, g.Indices)
	assert.Equal(t, 2, g.TriangleCount())
}

func TestTriangleCountIgnoresPartial(t *testing.T) {
	g := NewGeometry([]Vec3{{}, {X: 1}, {Y: 1}}, []uint32{0, 1, 2, 0, 1})
	assert.Equal(t, 1, g.TriangleCount())
}

// --- Bounds ---

func TestBoxBounds(t *testing.T) {
	b := NewBox(2, 4, 6).Bounds()
	assert.Equal(t, Vec3{X: -1, Y: -2, Z: -3}, b.Min)
	assert.Equal(t, Vec3{X: 1, Y: 2, Z: 3}, b.Max)
	assert.Equal(t, Vec3{}, b.Center())
	assert.False(t, b.Empty())
}

func TestBoundsEmptyGeometry(t *testing.T) {
	b := NewGeometry(nil, []uint32{}).Bounds()
	assert.True(t, b.Empty())
	assert.True(t, math.IsInf(b.Min.X, 1))
}

func TestBoundsInvalidate(t *testing.T) {
	g := NewQuad(2, 2)
	assert.Equal(t, 1.0, g.Bounds().Max.X)

	g.Positions[1].X = 10
	assert.Equal(t, 1.0, g.Bounds().Max.X, "cached until invalidated")

	g.InvalidateBounds()
	assert.Equal(t, 10.0, g.Bounds().Max.X)
}

func TestQuadFacesPlusZ(t *testing.T) {
	g := NewQuad(2, 2)
	b := g.Bounds()
	assert.Equal(t, 0.0, b.Min.Z)
	assert.Equal(t, 0.0, b.Max.Z)
	assert.Equal(t, 2, g.TriangleCount())
}

// --- Groups ---

func TestGroupOf(t *testing.T) {
	g := NewBox(1, 1, 1)
	g.AddGroup(0, 18, 0)
	g.AddGroup(18, 18, 1)

	assert.Equal(t, 0, g.groupOf(0))
	assert.Equal(t, 0, g.groupOf(15))
	assert.Equal(t, 1, g.groupOf(18))
	assert.Equal(t, 1, g.groupOf(33))
	assert.Equal(t, 0, g.groupOf(99), "outside every group falls back to 0")
}

func TestMaterialForGroup(t *testing.T) {
	a := NewStandardMaterial("a", ColorWhite)
	b := NewStandardMaterial("b", ColorBlack)
	d := &Drawable{Materials: []Material{a, b}}

	assert.Same(t, a, d.materialFor(0))
	assert.Same(t, b, d.materialFor(1))
	assert.Same(t, a, d.materialFor(7))
	assert.Nil(t, (&Drawable{}).materialFor(0))
}

// --- Dispose ---

func TestGeometryDispose(t *testing.T) {
	g := NewBox(1, 1, 1)
	g.Dispose()
	assert.True(t, g.IsDisposed())
	assert.Zero(t, g.TriangleCount())
	assert.Nil(t, g.Positions)
}

// --- Materials ---

func TestStandardMaterialCloneIsolated(t *testing.T) {
	m := NewStandardMaterial("skin", Color{R: 0.8, G: 0.6, B: 0.5})
	c := m.Clone().(*StandardMaterial)
	c.SetEmissive(ColorWhite)

	assert.Equal(t, ColorBlack, m.Emissive())
	assert.Equal(t, ColorWhite, c.Emissive())
	assert.Equal(t, m.BaseColor(), c.BaseColor())
}

func TestSetEmissiveSkipsUnlit(t *testing.T) {
	lit := NewStandardMaterial("lit", ColorWhite)
	unlit := NewBasicMaterial("unlit", ColorWhite)
	d := &Drawable{Materials: []Material{lit, unlit, nil}}

	n := setEmissive(d, Color{R: 1})
	assert.Equal(t, 1, n)
	assert.Equal(t, Color{R: 1}, lit.Emissive())
	assert.Equal(t, ColorBlack, emissiveOf(unlit))
}

func TestColorRGBAClamps(t *testing.T) {
	c := Color{R: 2, G: -1, B: 0.5}.RGBA()
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(0), c.G)
	assert.Equal(t, uint8(128), c.B)
	assert.Equal(t, uint8(255), c.A)
}
