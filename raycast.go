package musclemap

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const rayEpsilon = 1e-9

// Intersection describes a ray hit on a drawable.
type Intersection struct {
	Node *Node
	// Distance is the world-space distance from the ray origin.
	Distance float64
	// Point is the world-space hit position.
	Point Vec3
	// Face is the index of the hit triangle.
	Face int
}

// Raycast returns the nearest drawable hit by ray in the subtree rooted at
// root. World transforms must be current. ok is false if nothing is hit.
func Raycast(root *Node, ray Ray) (hit Intersection, ok bool) {
	best := math.Inf(1)
	root.Traverse(func(n *Node) {
		if n.Type != NodeTypeDrawable || n.Drawable == nil || !n.Visible {
			return
		}
		if !visibleChain(n) {
			return
		}
		geo := n.Drawable.Geometry
		if geo == nil || geo.IsDisposed() || geo.TriangleCount() == 0 {
			return
		}
		t, face, found := intersectNode(n, geo, ray, best)
		if !found {
			return
		}
		best = t
		hit = Intersection{Node: n, Distance: t, Point: ray.At(t), Face: face}
		ok = true
	})
	return hit, ok
}

// visibleChain reports whether n and all its ancestors are visible.
func visibleChain(n *Node) bool {
	for p := n; p != nil; p = p.Parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

// intersectNode tests ray against geo in n's local space. The local ray keeps
// the unnormalized transformed direction so the returned t is the world
// distance. Only hits closer than maxT are reported.
func intersectNode(n *Node, geo *Geometry, ray Ray, maxT float64) (float64, int, bool) {
	inv := n.worldMatrix.InverseAffine()
	local := Ray{
		Origin:    inv.MulPoint(ray.Origin),
		Direction: inv.MulDir(ray.Direction),
	}
	if !intersectBox(local, geo.Bounds(), maxT) {
		return 0, 0, false
	}

	bestT := maxT
	bestFace := -1
	ps := geo.Positions
	idx := geo.Indices
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := int(idx[i]), int(idx[i+1]), int(idx[i+2])
		if a >= len(ps) || b >= len(ps) || c >= len(ps) {
			continue
		}
		t, hit := intersectTriangle(local, ps[a], ps[b], ps[c])
		if hit && t < bestT {
			bestT = t
			bestFace = i / 3
		}
	}
	if bestFace < 0 {
		return 0, 0, false
	}
	return bestT, bestFace, true
}

// intersectTriangle is the Möller–Trumbore ray/triangle test. Both faces
// are hit-testable.
func intersectTriangle(ray Ray, a, b, c Vec3) (float64, bool) {
	e1 := r3.Sub(b, a)
	e2 := r3.Sub(c, a)
	p := r3.Cross(ray.Direction, e2)
	det := r3.Dot(e1, p)
	if det > -rayEpsilon && det < rayEpsilon {
		return 0, false
	}
	invDet := 1 / det
	s := r3.Sub(ray.Origin, a)
	u := r3.Dot(s, p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	q := r3.Cross(s, e1)
	v := r3.Dot(ray.Direction, q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := r3.Dot(e2, q) * invDet
	if t < rayEpsilon {
		return 0, false
	}
	return t, true
}

// intersectBox is the slab test against an AABB, limited to [0, maxT].
func intersectBox(ray Ray, b Box3, maxT float64) bool {
	if b.Empty() {
		return false
	}
	tmin, tmax := 0.0, maxT
	o := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	d := [3]float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
	for k := 0; k < 3; k++ {
		if math.Abs(d[k]) < rayEpsilon {
			if o[k] < lo[k] || o[k] > hi[k] {
				return false
			}
			continue
		}
		inv := 1 / d[k]
		t0 := (lo[k] - o[k]) * inv
		t1 := (hi[k] - o[k]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = math.Max(tmin, t0)
		tmax = math.Min(tmax, t1)
		if tmin > tmax {
			return false
		}
	}
	return true
}
