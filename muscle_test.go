package musclemap

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- NormalizeKey ---

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Upper Chest (Left)", "upper_chest_left"},
		{"upper_chest_left", "upper_chest_left"},
		{"  Biceps  ", "biceps"},
		{"Rear--Delts..", "rear_delts"},
		{"Quad 2", "quad_2"},
		{"Trapèzes", "trapèzes"},
		{"Bíceps Braquial", "bíceps_braquial"},
		{"", UnknownMuscleKey},
		{"(( ))", UnknownMuscleKey},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKey(tt.in))
		})
	}
}

func TestNormalizeKeyDeterministic(t *testing.T) {
	label := "Upper Chest (Left)"
	first := NormalizeKey(label)
	assert.Equal(t, first, NormalizeKey(label))
	assert.Equal(t, first, NormalizeKey(first), "normalizing a key is a no-op")
}

// --- PrettifyName ---

func TestPrettifyName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"upper_chest_left.001", "Upper Chest Left"},
		{"Bicep-Left", "Bicep Left"},
		{"CALF_right", "Calf Right"},
		{"mesh_42", "Mesh"},
		{"123", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, PrettifyName(tt.in))
		})
	}
}

func TestPrettifyNameConcurrent(t *testing.T) {
	names := []string{"upper_chest_left.001", "Bicep-Left", "CALF_right", "rear_delt"}
	want := []string{"Upper Chest Left", "Bicep Left", "Calf Right", "Rear Delt"}

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				k := (g + i) % len(names)
				if got := PrettifyName(names[k]); got != want[k] {
					errs <- got
					return
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("PrettifyName returned %q under concurrent use", got)
	}
}

// --- MuscleIndex ---

func TestMuscleIndexBuckets(t *testing.T) {
	ix := NewMuscleIndex()
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewGroup("c")
	ix.Add("biceps", a)
	ix.Add("abs", b)
	ix.Add("biceps", c)

	assert.Equal(t, []string{"biceps", "abs"}, ix.Keys())
	assert.Equal(t, []*Node{a, c}, ix.Nodes("biceps"))
	assert.True(t, ix.Has("abs"))
	assert.False(t, ix.Has("calves"))
	assert.Equal(t, 2, ix.Len())

	ix.Clear()
	assert.Zero(t, ix.Len())
	assert.Nil(t, ix.Nodes("biceps"))
}

func TestMuscleIndexNilSafe(t *testing.T) {
	var ix *MuscleIndex
	assert.Nil(t, ix.Nodes("x"))
	assert.Nil(t, ix.Keys())
	assert.False(t, ix.Has("x"))
	assert.Zero(t, ix.Len())
}

func TestMuscleIndexKeysCopy(t *testing.T) {
	ix := NewMuscleIndex()
	ix.Add("abs", NewGroup("a"))
	keys := ix.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"abs"}, ix.Keys())
}
