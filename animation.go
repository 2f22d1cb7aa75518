package musclemap

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenRotation)
// and call Update(dt) each frame, or hand it to Scene.AddTween. The group
// auto-applies values and marks the node dirty. If the target node is
// disposed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// TweenPosition creates a TweenGroup that animates node.Position to to over
// the specified duration using the easing function.
func TweenPosition(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node}
	g.tweens[0] = gween.New(float32(node.Position.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(node.Position.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(node.Position.Z), float32(to.Z), duration, fn)
	g.fields[0] = &node.Position.X
	g.fields[1] = &node.Position.Y
	g.fields[2] = &node.Position.Z
	return g
}

// TweenRotation creates a TweenGroup that animates the node's Euler angles
// to to over the specified duration using the easing function.
func TweenRotation(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node}
	g.tweens[0] = gween.New(float32(node.Rotation.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(node.Rotation.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(node.Rotation.Z), float32(to.Z), duration, fn)
	g.fields[0] = &node.Rotation.X
	g.fields[1] = &node.Rotation.Y
	g.fields[2] = &node.Rotation.Z
	return g
}

// AddTween registers g to be advanced by Scene.Update. Finished groups are
// dropped automatically.
func (s *Scene) AddTween(g *TweenGroup) {
	if g == nil || s.disposed {
		return
	}
	s.tweens = append(s.tweens, g)
}

// CancelTweens drops every pending tween targeting n, leaving its fields
// where they are.
func (s *Scene) CancelTweens(n *Node) {
	kept := s.tweens[:0]
	for _, g := range s.tweens {
		if g.target != n {
			kept = append(kept, g)
		}
	}
	clear(s.tweens[len(kept):])
	s.tweens = kept
}

// updateTweens advances registered tweens and removes finished ones.
func (s *Scene) updateTweens(dt float32) {
	if len(s.tweens) == 0 {
		return
	}
	kept := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			kept = append(kept, g)
		}
	}
	clear(s.tweens[len(kept):])
	s.tweens = kept
}
