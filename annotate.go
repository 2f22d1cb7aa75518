package musclemap

// ResolveMuscle returns the key and label for a mesh with the given raw
// name. An override in catalog wins; otherwise the label is the prettified
// name and the key is the normalized label.
func ResolveMuscle(raw string, catalog *Catalog) (key, label string) {
	if info, ok := catalog.Lookup(raw); ok {
		return info.Key, info.Label
	}
	label = PrettifyName(raw)
	return NormalizeKey(label), label
}

// Annotate walks every drawable under root, assigns its muscle key and
// label, replaces its materials with private clones whose emissive channel
// is set to base, enables shadow flags, and appends it to index. Returns the
// number of drawables annotated.
func Annotate(root *Node, catalog *Catalog, base Color, index *MuscleIndex) int {
	if root == nil || index == nil {
		return 0
	}
	count := 0
	root.Traverse(func(n *Node) {
		if n.Type != NodeTypeDrawable || n.Drawable == nil {
			return
		}
		d := n.Drawable
		d.MuscleKey, d.MuscleLabel = ResolveMuscle(n.Name, catalog)

		for i, m := range d.Materials {
			if m == nil {
				continue
			}
			d.Materials[i] = m.Clone()
		}
		setEmissive(d, base)

		index.Add(d.MuscleKey, n)
		d.CastShadow = true
		d.ReceiveShadow = true
		count++
	})
	return count
}

// applyRestingPose places the model root at its resting offset and tilt.
func applyRestingPose(root *Node, m ModelConfig) {
	root.SetPosition(0, m.OffsetY, 0)
	root.SetRotation(m.RestingTilt, 0, 0)
}

// muscleKeyOf resolves the key to report for a hit drawable: its assigned
// key, else a key derived from its label. ok is false when neither is set.
func muscleKeyOf(n *Node) (key string, ok bool) {
	if n == nil || n.Drawable == nil {
		return "", false
	}
	if k := n.Drawable.MuscleKey; k != "" {
		return k, true
	}
	if l := n.Drawable.MuscleLabel; l != "" {
		return NormalizeKey(l), true
	}
	return "", false
}
