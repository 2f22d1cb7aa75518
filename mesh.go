package musclemap

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// GeometryGroup is a contiguous run of triangles drawn with one material.
// Start and Count are measured in indices (three per triangle).
type GeometryGroup struct {
	Start         int
	Count         int
	MaterialIndex int
}

// Geometry is an indexed triangle list in local space.
type Geometry struct {
	Positions []Vec3
	Indices   []uint32
	Groups    []GeometryGroup

	bounds      Box3
	boundsDirty bool
	disposed    bool
}

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min, Max Vec3
}

// Empty reports whether the box contains no points.
func (b Box3) Empty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// Center returns the midpoint of the box.
func (b Box3) Center() Vec3 {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// NewGeometry creates a geometry from positions and triangle indices.
// If indices is nil, positions are treated as a non-indexed triangle list.
func NewGeometry(positions []Vec3, indices []uint32) *Geometry {
	if indices == nil {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	return &Geometry{
		Positions:   positions,
		Indices:     indices,
		boundsDirty: true,
	}
}

// TriangleCount returns the number of complete triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// AddGroup appends a material group.
func (g *Geometry) AddGroup(start, count, materialIndex int) {
	g.Groups = append(g.Groups, GeometryGroup{Start: start, Count: count, MaterialIndex: materialIndex})
}

// groupOf returns the material index of the triangle starting at index i.
func (g *Geometry) groupOf(i int) int {
	for _, gr := range g.Groups {
		if i >= gr.Start && i < gr.Start+gr.Count {
			return gr.MaterialIndex
		}
	}
	return 0
}

// InvalidateBounds marks the cached bounds as needing recomputation.
// Call this after modifying Positions.
func (g *Geometry) InvalidateBounds() {
	g.boundsDirty = true
}

// Bounds returns the local-space AABB, recomputing it if dirty.
func (g *Geometry) Bounds() Box3 {
	if g.boundsDirty {
		g.bounds = computeBounds(g.Positions)
		g.boundsDirty = false
	}
	return g.bounds
}

// Dispose drops the vertex data. A disposed geometry draws and hits nothing.
func (g *Geometry) Dispose() {
	g.Positions = nil
	g.Indices = nil
	g.Groups = nil
	g.bounds = Box3{}
	g.disposed = true
}

// IsDisposed reports whether Dispose has been called.
func (g *Geometry) IsDisposed() bool {
	return g.disposed
}

// computeBounds scans positions and returns their AABB. An empty slice
// yields an inverted (Empty) box.
func computeBounds(ps []Vec3) Box3 {
	b := Box3{
		Min: Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for _, p := range ps {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Min.Z = math.Min(b.Min.Z, p.Z)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
		b.Max.Z = math.Max(b.Max.Z, p.Z)
	}
	return b
}

// NewBox creates an axis-aligned box geometry centered at the origin.
func NewBox(w, h, d float64) *Geometry {
	x, y, z := w/2, h/2, d/2
	ps := []Vec3{
		{X: -x, Y: -y, Z: z}, {X: x, Y: -y, Z: z}, {X: x, Y: y, Z: z}, {X: -x, Y: y, Z: z},
		{X: -x, Y: -y, Z: -z}, {X: x, Y: -y, Z: -z}, {X: x, Y: y, Z: -z}, {X: -x, Y: y, Z: -z},
	}
	idx := []uint32{
		0, 1, 2, 0, 2, 3, // front
		5, 4, 7, 5, 7, 6, // back
		4, 0, 3, 4, 3, 7, // left
		1, 5, 6, 1, 6, 2, // right
		3, 2, 6, 3, 6, 7, // top
		4, 5, 1, 4, 1, 0, // bottom
	}
	return NewGeometry(ps, idx)
}

// NewQuad creates a w×h rectangle in the XY plane facing +Z, centered at the origin.
func NewQuad(w, h float64) *Geometry {
	x, y := w/2, h/2
	ps := []Vec3{
		{X: -x, Y: -y}, {X: x, Y: -y}, {X: x, Y: y}, {X: -x, Y: y},
	}
	return NewGeometry(ps, []uint32{0, 1, 2, 0, 2, 3})
}
