package musclemap

// computeLocalMatrix returns the node's local matrix: Basis when set,
// otherwise Translate(Position) × Rotate(Rotation, XYZ) × Scale(Scale).
func computeLocalMatrix(n *Node) Mat4 {
	if n.Basis != nil {
		return *n.Basis
	}
	return composeTRS(n.Position, n.Rotation, n.Scale)
}

// updateWorldTransform recomputes a node's worldMatrix.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parent Mat4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldMatrix = Mat4Mul(parent, computeLocalMatrix(n))
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldMatrix, recompute)
	}
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(x, y, z float64) {
	n.Position = Vec3{X: x, Y: y, Z: z}
	n.transformDirty = true
}

// SetRotation sets the node's Euler rotation (radians, XYZ order) and marks it dirty.
func (n *Node) SetRotation(pitch, yaw, roll float64) {
	n.Rotation = Vec3{X: pitch, Y: yaw, Z: roll}
	n.transformDirty = true
}

// SetScale sets the node's scale and marks it dirty.
func (n *Node) SetScale(sx, sy, sz float64) {
	n.Scale = Vec3{X: sx, Y: sy, Z: sz}
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next update. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldMatrix returns the world matrix computed by the last transform update.
func (n *Node) WorldMatrix() Mat4 {
	return n.worldMatrix
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local space.
func (n *Node) WorldToLocal(p Vec3) Vec3 {
	return n.worldMatrix.InverseAffine().MulPoint(p)
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p Vec3) Vec3 {
	return n.worldMatrix.MulPoint(p)
}
