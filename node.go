package musclemap

import "sync/atomic"

// nodeIDCounter is atomic because loaders build graphs off the event loop.
var nodeIDCounter atomic.Uint32

func nextNodeID() uint32 {
	return nodeIDCounter.Add(1)
}

// Drawable is the payload of a NodeTypeDrawable node: renderable geometry,
// its materials, and the muscle metadata assigned during annotation.
type Drawable struct {
	Geometry *Geometry
	// Materials holds one entry per geometry group. A geometry with no groups
	// uses Materials[0] for every triangle.
	Materials []Material

	MuscleKey   string
	MuscleLabel string

	CastShadow    bool
	ReceiveShadow bool
}

// materialFor returns the material used by the given geometry group.
func (d *Drawable) materialFor(group int) Material {
	if len(d.Materials) == 0 {
		return nil
	}
	if group < 0 || group >= len(d.Materials) {
		return d.Materials[0]
	}
	return d.Materials[group]
}

// Node is a scene graph element. The Type tag selects which payload is set:
// Drawable for NodeTypeDrawable, Light for NodeTypeLight. Group and camera
// nodes carry neither.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Rotation holds Euler angles in radians applied in
	// XYZ order: X is pitch, Y is yaw, Z is roll.
	Position Vec3
	Rotation Vec3
	Scale    Vec3

	// Basis, when non-nil, replaces Position/Rotation/Scale as the local
	// matrix. Imported asset nodes carry their authored matrix here.
	Basis *Mat4

	worldMatrix    Mat4
	transformDirty bool

	Visible  bool
	UserData any

	Drawable *Drawable
	Light    *Light

	disposed bool
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Scale = Vec3{X: 1, Y: 1, Z: 1}
	n.Visible = true
	n.transformDirty = true
	n.worldMatrix = identityMat4
}

// NewGroup creates a structural node with no visual representation.
func NewGroup(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeGroup}
	nodeDefaults(n)
	return n
}

// NewDrawable creates a drawable node for the given geometry and materials.
func NewDrawable(name string, geo *Geometry, materials ...Material) *Node {
	n := &Node{
		Name: name,
		Type: NodeTypeDrawable,
		Drawable: &Drawable{
			Geometry:  geo,
			Materials: materials,
		},
	}
	nodeDefaults(n)
	return n
}

// NewLightNode creates a light node.
func NewLightNode(name string, light *Light) *Node {
	n := &Node{Name: name, Type: NodeTypeLight, Light: light}
	nodeDefaults(n)
	return n
}

// NewCameraNode creates a camera placeholder node. Imported cameras are kept
// in the graph for structure only; the scene always renders from its own
// Camera.
func NewCameraNode(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeCamera}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("musclemap: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("musclemap: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("musclemap: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Traverse calls fn for n and every descendant in depth-first pre-order.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, child := range n.children {
		child.Traverse(fn)
	}
}

// FindByName returns the first node in the subtree whose Name matches, or nil.
func (n *Node) FindByName(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, releases the geometry and
// materials of every drawable in the subtree, and marks all of it disposed.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	if d := n.Drawable; d != nil {
		if d.Geometry != nil {
			d.Geometry.Dispose()
		}
		for _, m := range d.Materials {
			if m != nil {
				m.Dispose()
			}
		}
		d.Geometry = nil
		d.Materials = nil
	}
	n.Drawable = nil
	n.Light = nil
	n.Basis = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
