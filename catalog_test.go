package musclemap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Default catalog ---

func TestDefaultCatalogOverrides(t *testing.T) {
	c := DefaultCatalog()
	require.NotZero(t, c.NumOverrides())

	info, ok := c.Lookup("upper_chest_left")
	require.True(t, ok)
	assert.Equal(t, "chest_upper_left", info.Key)
	assert.Equal(t, "Upper Chest (Left)", info.Label)

	left, _ := c.Lookup("bicep_left")
	right, _ := c.Lookup("bicep_right")
	assert.Equal(t, "biceps", left.Key)
	assert.Equal(t, left, right, "both arms share one key")
}

func TestDefaultCatalogLinks(t *testing.T) {
	c := DefaultCatalog()
	assert.ElementsMatch(t, []string{"chest_upper_left", "chest_upper_right"}, c.Linked("chest_upper_left"))
	assert.ElementsMatch(t, []string{"chest_upper_left", "chest_upper_right"}, c.Linked("chest_upper_right"))
	assert.Equal(t, []string{"biceps"}, c.Linked("biceps"))
}

// --- Links ---

func TestLinkSymmetric(t *testing.T) {
	c := NewCatalog()
	c.Link("a", "b", "c")
	for _, k := range []string{"a", "b", "c"} {
		assert.ElementsMatch(t, []string{"a", "b", "c"}, c.Linked(k), "key %s", k)
	}
}

func TestLinkMerges(t *testing.T) {
	c := NewCatalog()
	c.Link("a", "b")
	c.Link("a", "c")
	assert.ElementsMatch(t, []string{"a", "b", "c"}, c.Linked("a"))
	assert.ElementsMatch(t, []string{"a", "b"}, c.Linked("b"))
	assert.ElementsMatch(t, []string{"a", "c"}, c.Linked("c"))
}

func TestLinkNormalizesKeys(t *testing.T) {
	c := NewCatalog()
	c.Link("Quads (Left)", "quads_right")
	assert.ElementsMatch(t, []string{"quads_left", "quads_right"}, c.Linked("quads_left"))
}

func TestLinkedDefaultsToSelf(t *testing.T) {
	c := NewCatalog()
	assert.Equal(t, []string{"calves"}, c.Linked("calves"))

	var nilCatalog *Catalog
	assert.Equal(t, []string{"calves"}, nilCatalog.Linked("calves"))
}

func TestLinkedReturnsCopy(t *testing.T) {
	c := NewCatalog()
	c.Link("a", "b")
	got := c.Linked("a")
	got[0] = "mutated"
	assert.NotContains(t, c.Linked("a"), "mutated")
}

// --- Overrides ---

func TestSetOverrideDerivesMissingFields(t *testing.T) {
	c := NewCatalog()
	c.SetOverride("mesh_a", MuscleInfo{Label: "Lower Back"})
	c.SetOverride("mesh_b", MuscleInfo{Key: "Rear Delts"})

	a, _ := c.Lookup("mesh_a")
	assert.Equal(t, MuscleInfo{Key: "lower_back", Label: "Lower Back"}, a)
	b, _ := c.Lookup("mesh_b")
	assert.Equal(t, MuscleInfo{Key: "rear_delts", Label: "Rear Delts"}, b)
}

// --- Parsing ---

func TestParseCatalogErrors(t *testing.T) {
	_, err := ParseCatalog([]byte("links: [[]]"))
	assert.ErrorContains(t, err, "link group 0 is empty")

	_, err = ParseCatalog([]byte("overrides: ["))
	assert.ErrorContains(t, err, "parse catalog")
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte("overrides:\n  m1: {key: neck, label: Neck}\nlinks:\n  - [neck, traps]\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	info, ok := c.Lookup("m1")
	require.True(t, ok)
	assert.Equal(t, "neck", info.Key)
	assert.ElementsMatch(t, []string{"neck", "traps"}, c.Linked("traps"))
}

func TestLoadCatalogMissing(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
