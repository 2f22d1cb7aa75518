package musclemap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestOrbit() *OrbitController {
	return NewOrbitController(DefaultConfig().Orbit)
}

func TestOrbitYawAndPitch(t *testing.T) {
	o := newTestOrbit()
	n := NewGroup("model")
	o.Rotate(n, 100, 20)

	assert.InDelta(t, 100*o.YawSpeed, n.Rotation.Y, 1e-12)
	assert.InDelta(t, 20*o.PitchSpeed, n.Rotation.X, 1e-12)
	assert.Equal(t, 0.0, n.Rotation.Z)
	assert.True(t, n.transformDirty)
}

func TestOrbitPitchClamp(t *testing.T) {
	o := newTestOrbit()
	n := NewGroup("model")
	for i := 0; i < 100; i++ {
		o.Rotate(n, 0, 1000)
		assert.LessOrEqual(t, n.Rotation.X, math.Pi/6)
	}
	assert.Equal(t, math.Pi/6, n.Rotation.X)

	for i := 0; i < 100; i++ {
		o.Rotate(n, 0, -1000)
	}
	assert.Equal(t, -math.Pi/6, n.Rotation.X)
}

func TestOrbitStartsFromRestingTilt(t *testing.T) {
	o := newTestOrbit()
	n := NewGroup("model")
	applyRestingPose(n, DefaultConfig().Model)
	o.Rotate(n, 0, 1)
	assert.InDelta(t, -0.5+o.PitchSpeed, n.Rotation.X, 1e-12)
}

func TestOrbitYawUnbounded(t *testing.T) {
	o := newTestOrbit()
	n := NewGroup("model")
	for i := 0; i < 10; i++ {
		o.Rotate(n, 1000, 0)
	}
	assert.InDelta(t, 10*1000*o.YawSpeed, n.Rotation.Y, 1e-9)
}

func TestOrbitRollZeroed(t *testing.T) {
	o := newTestOrbit()
	n := NewGroup("model")
	n.SetRotation(0, 0, 1.2)
	o.Rotate(n, 5, 5)
	assert.Equal(t, 0.0, n.Rotation.Z)
}

func TestOrbitDragSequence(t *testing.T) {
	o := newTestOrbit()
	n := NewGroup("model")

	assert.False(t, o.Move(n, 50, 50), "no drag in progress")
	assert.Equal(t, Vec3{}, n.Rotation)

	o.Begin(10, 10)
	assert.True(t, o.Dragging())
	assert.True(t, o.Move(n, 20, 10))
	assert.True(t, o.Move(n, 30, 10))
	assert.InDelta(t, 20*o.YawSpeed, n.Rotation.Y, 1e-12)

	o.End()
	assert.False(t, o.Dragging())
	assert.False(t, o.Move(n, 100, 100))
	assert.InDelta(t, 20*o.YawSpeed, n.Rotation.Y, 1e-12)
}

func TestOrbitNilTarget(t *testing.T) {
	o := newTestOrbit()
	assert.NotPanics(t, func() { o.Rotate(nil, 10, 10) })

	n := NewGroup("model")
	n.Dispose()
	assert.NotPanics(t, func() { o.Rotate(n, 10, 10) })
}
