package musclemap

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnknownMuscleKey is the key assigned when normalization yields nothing.
const UnknownMuscleKey = "unknown"

// NormalizeKey derives a muscle key from a label: lowercase, every run of
// non-alphanumeric characters collapsed to a single underscore, leading and
// trailing underscores trimmed. An empty result becomes UnknownMuscleKey.
func NormalizeKey(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	pendingSep := false
	for _, r := range strings.ToLower(label) {
		if isKeyRune(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	if b.Len() == 0 {
		return UnknownMuscleKey
	}
	return b.String()
}

// isKeyRune reports whether r survives into a key.
func isKeyRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// PrettifyName turns a raw mesh name into a display label: separators become
// spaces, digits are stripped, whitespace is collapsed, and each word is
// title-cased. "upper_chest_left.001" becomes "Upper Chest Left".
func PrettifyName(raw string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r == '_' || r == '-' || r == '.' || r == ':' || r == '/':
			return ' '
		case unicode.IsDigit(r):
			return -1
		}
		return r
	}, raw)
	words := strings.Fields(mapped)
	if len(words) == 0 {
		return ""
	}
	// A Caser holds state between calls, so each call gets its own.
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// MuscleIndex maps muscle keys to the drawable nodes representing them.
// Key order follows first insertion.
type MuscleIndex struct {
	keys  []string
	nodes map[string][]*Node
}

// NewMuscleIndex creates an empty index.
func NewMuscleIndex() *MuscleIndex {
	return &MuscleIndex{nodes: make(map[string][]*Node)}
}

// Add appends n to the bucket for key. Buckets are never overwritten.
func (ix *MuscleIndex) Add(key string, n *Node) {
	if _, ok := ix.nodes[key]; !ok {
		ix.keys = append(ix.keys, key)
	}
	ix.nodes[key] = append(ix.nodes[key], n)
}

// Nodes returns the nodes registered under key. The returned slice MUST NOT
// be mutated by the caller.
func (ix *MuscleIndex) Nodes(key string) []*Node {
	if ix == nil {
		return nil
	}
	return ix.nodes[key]
}

// Has reports whether key has at least one node.
func (ix *MuscleIndex) Has(key string) bool {
	return ix != nil && len(ix.nodes[key]) > 0
}

// Keys returns the indexed keys in insertion order.
func (ix *MuscleIndex) Keys() []string {
	if ix == nil {
		return nil
	}
	out := make([]string, len(ix.keys))
	copy(out, ix.keys)
	return out
}

// Len returns the number of distinct keys.
func (ix *MuscleIndex) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.keys)
}

// Clear removes every entry.
func (ix *MuscleIndex) Clear() {
	ix.keys = ix.keys[:0]
	clear(ix.nodes)
}
