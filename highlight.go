package musclemap

// Highlighter tracks which muscle keys are lit and moves the highlight
// between them. The current set is its only state.
type Highlighter struct {
	index   *MuscleIndex
	links   *Catalog
	base    Color
	color   Color
	current []string
}

// NewHighlighter creates a highlighter over index using the link table of
// links. base is the resting emissive color, color the highlight.
func NewHighlighter(index *MuscleIndex, links *Catalog, base, color Color) *Highlighter {
	return &Highlighter{index: index, links: links, base: base, color: color}
}

// HighlightMuscle restores the previously highlighted keys to the base
// color, then lights key and every key linked to it. The new set replaces
// the old one. A key with no nodes still clears the previous highlight.
func (h *Highlighter) HighlightMuscle(key string) {
	h.paint(h.current, h.base)
	next := h.links.Linked(key)
	h.paint(next, h.color)
	h.current = next
}

// Clear restores every highlighted key to the base color.
func (h *Highlighter) Clear() {
	h.paint(h.current, h.base)
	h.current = nil
}

// Current returns a copy of the highlighted keys.
func (h *Highlighter) Current() []string {
	if len(h.current) == 0 {
		return nil
	}
	out := make([]string, len(h.current))
	copy(out, h.current)
	return out
}

// IsHighlighted reports whether key is in the current set.
func (h *Highlighter) IsHighlighted(key string) bool {
	for _, k := range h.current {
		if k == key {
			return true
		}
	}
	return false
}

// Reset forgets the current set without touching any material. Used on
// teardown, when the materials are being disposed anyway.
func (h *Highlighter) Reset() {
	h.current = nil
}

// SetIndex points the highlighter at a new index and forgets the current set.
func (h *Highlighter) SetIndex(index *MuscleIndex) {
	h.index = index
	h.current = nil
}

func (h *Highlighter) paint(keys []string, c Color) {
	for _, k := range keys {
		for _, n := range h.index.Nodes(k) {
			if n.Drawable == nil {
				continue
			}
			setEmissive(n.Drawable, c)
		}
	}
}
