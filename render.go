package musclemap

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// faceCommand is a single projected, shaded triangle emitted during scene
// traversal. Faces are sorted back to front before submission.
type faceCommand struct {
	// Screen-space corners.
	x [3]float32
	y [3]float32
	// depth is the view-space distance of the face centroid. Larger is
	// farther from the camera.
	depth float64
	color color32
	// treeOrder keeps the sort stable for coplanar faces.
	treeOrder int
}

// color32 is a compact RGBA color using float32, for render commands only.
type color32 struct {
	R, G, B, A float32
}

func toColor32(c Color) color32 {
	return color32{
		R: float32(clamp01(c.R)),
		G: float32(clamp01(c.G)),
		B: float32(clamp01(c.B)),
		A: 1,
	}
}

// compileFaces walks the graph and fills s.faces with every visible triangle
// of every drawable, lit and projected through the current camera, then sorts
// them back to front. World transforms must be current.
func (s *Scene) compileFaces() {
	s.faces = s.faces[:0]
	cam := s.camera
	cam.computeMatrices()
	lights := collectLights(s.root)

	treeOrder := 0
	s.traverse(s.root, &lights, &treeOrder)
	s.mergeSort()
}

// traverse emits face commands for n and its visible descendants.
func (s *Scene) traverse(n *Node, lights *lighting, treeOrder *int) {
	if !n.Visible {
		return
	}
	if n.Type == NodeTypeDrawable && n.Drawable != nil {
		s.emitDrawable(n, lights, treeOrder)
	}
	for _, child := range n.children {
		s.traverse(child, lights, treeOrder)
	}
}

// emitDrawable appends one face command per front-of-near-plane triangle.
func (s *Scene) emitDrawable(n *Node, lights *lighting, treeOrder *int) {
	d := n.Drawable
	geo := d.Geometry
	if geo == nil || geo.IsDisposed() {
		return
	}
	cam := s.camera
	ps := geo.Positions
	idx := geo.Indices
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := int(idx[i]), int(idx[i+1]), int(idx[i+2])
		if a >= len(ps) || b >= len(ps) || c >= len(ps) {
			continue
		}
		mat := d.materialFor(geo.groupOf(i))
		if mat == nil || materialDisposed(mat) {
			continue
		}

		world := [3]Vec3{
			n.worldMatrix.MulPoint(ps[a]),
			n.worldMatrix.MulPoint(ps[b]),
			n.worldMatrix.MulPoint(ps[c]),
		}
		var cmd faceCommand
		visible := true
		var depth float64
		for k, p := range world {
			x, y, _, w := cam.viewProj.MulPointW(p)
			if w < cam.Near {
				visible = false
				break
			}
			cmd.x[k] = float32((x/w + 1) / 2 * cam.width)
			cmd.y[k] = float32((1 - y/w) / 2 * cam.height)
			depth += w
		}
		if !visible {
			continue
		}

		normal := r3.Cross(r3.Sub(world[1], world[0]), r3.Sub(world[2], world[0]))
		if r3.Norm(normal) > 0 {
			normal = r3.Unit(normal)
		}
		cmd.depth = depth / 3
		cmd.color = toColor32(lights.shade(mat.BaseColor(), emissiveOf(mat), normal))
		cmd.treeOrder = *treeOrder
		*treeOrder++
		s.faces = append(s.faces, cmd)
	}
}

// materialDisposed reports whether m has been released.
func materialDisposed(m Material) bool {
	if d, ok := m.(interface{ IsDisposed() bool }); ok {
		return d.IsDisposed()
	}
	return false
}

// --- Merge sort ---

// faceLessOrEqual returns true if a should be drawn before or at the same
// position as b. Farther faces draw first.
func faceLessOrEqual(a, b faceCommand) bool {
	if a.depth != b.depth {
		return a.depth > b.depth
	}
	return a.treeOrder <= b.treeOrder
}

// mergeSort sorts s.faces in-place using s.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (s *Scene) mergeSort() {
	n := len(s.faces)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]faceCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.faces
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.faces, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []faceCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if faceLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
