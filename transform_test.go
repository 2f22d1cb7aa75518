package musclemap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-9

func assertVec(t *testing.T, name string, got, want Vec3) {
	t.Helper()
	if math.Abs(got.X-want.X) > 1e-6 || math.Abs(got.Y-want.Y) > 1e-6 || math.Abs(got.Z-want.Z) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Mat4) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
			return
		}
	}
}

// --- Matrix helpers ---

func TestMat4MulIdentity(t *testing.T) {
	m := composeTRS(Vec3{X: 1, Y: 2, Z: 3}, Vec3{X: 0.3, Y: -0.2, Z: 0.1}, Vec3{X: 2, Y: 2, Z: 2})
	assertMatrix(t, "I*m", Mat4Mul(identityMat4, m), m)
	assertMatrix(t, "m*I", Mat4Mul(m, identityMat4), m)
}

func TestInverseAffineRoundTrip(t *testing.T) {
	m := composeTRS(Vec3{X: 5, Y: -3, Z: 10}, Vec3{X: 0.4, Y: 1.1, Z: -0.7}, Vec3{X: 2, Y: 0.5, Z: 3})
	assertMatrix(t, "m*inv", Mat4Mul(m, m.InverseAffine()), identityMat4)
}

func TestInverseAffineSingular(t *testing.T) {
	m := composeTRS(Vec3{}, Vec3{}, Vec3{})
	assert.Equal(t, identityMat4, m.InverseAffine())
}

func TestRotYQuarterTurn(t *testing.T) {
	// +90° yaw turns +X toward -Z.
	got := rotY(math.Pi / 2).MulPoint(Vec3{X: 1})
	assertVec(t, "rotY(+X)", got, Vec3{Z: -1})
}

func TestComposeQuatTRSMatchesEuler(t *testing.T) {
	// Quaternion for 90° about Y.
	s := math.Sin(math.Pi / 4)
	q := [4]float64{0, s, 0, s}
	got := composeQuatTRS(Vec3{X: 1}, q, Vec3{X: 1, Y: 1, Z: 1})
	want := composeTRS(Vec3{X: 1}, Vec3{Y: math.Pi / 2}, Vec3{X: 1, Y: 1, Z: 1})
	assertMatrix(t, "quat", got, want)
}

func TestMulDirIgnoresTranslation(t *testing.T) {
	m := composeTRS(Vec3{X: 100, Y: 100, Z: 100}, Vec3{}, Vec3{X: 1, Y: 1, Z: 1})
	assertVec(t, "dir", m.MulDir(Vec3{X: 1}), Vec3{X: 1})
}

// --- computeLocalMatrix ---

func TestLocalMatrixIdentity(t *testing.T) {
	n := NewGroup("test")
	assertMatrix(t, "identity", computeLocalMatrix(n), identityMat4)
}

func TestLocalMatrixTranslation(t *testing.T) {
	n := NewGroup("test")
	n.SetPosition(10, 20, 30)
	got := computeLocalMatrix(n)
	assertVec(t, "origin", got.MulPoint(Vec3{}), Vec3{X: 10, Y: 20, Z: 30})
}

func TestLocalMatrixUsesBasis(t *testing.T) {
	n := NewGroup("test")
	n.SetPosition(10, 20, 30)
	basis := composeTRS(Vec3{X: -1}, Vec3{}, Vec3{X: 1, Y: 1, Z: 1})
	n.Basis = &basis
	assertMatrix(t, "basis", computeLocalMatrix(n), basis)
}

// --- updateWorldTransform ---

func TestWorldTransformInheritsParent(t *testing.T) {
	root := NewGroup("root")
	parent := NewGroup("parent")
	child := NewGroup("child")
	root.AddChild(parent)
	parent.AddChild(child)
	parent.SetPosition(100, 0, 0)
	parent.SetScale(2, 2, 2)
	child.SetPosition(10, 0, 0)

	updateWorldTransform(root, identityMat4, false)
	assertVec(t, "child origin", child.LocalToWorld(Vec3{}), Vec3{X: 120})
}

func TestWorldTransformDirtyPropagation(t *testing.T) {
	root := NewGroup("root")
	child := NewGroup("child")
	root.AddChild(child)
	child.SetPosition(1, 0, 0)
	updateWorldTransform(root, identityMat4, false)

	root.SetPosition(0, 5, 0)
	updateWorldTransform(root, identityMat4, false)
	assertVec(t, "child origin", child.LocalToWorld(Vec3{}), Vec3{X: 1, Y: 5})
	assert.False(t, child.transformDirty)
}

func TestWorldToLocalRoundTrip(t *testing.T) {
	n := NewGroup("n")
	n.SetPosition(3, 4, 5)
	n.SetRotation(0.5, 1.0, 0)
	n.SetScale(2, 2, 2)
	updateWorldTransform(n, identityMat4, false)

	p := Vec3{X: 7, Y: -2, Z: 1}
	assertVec(t, "round trip", n.LocalToWorld(n.WorldToLocal(p)), p)
}

func TestPitchAppliedAfterYaw(t *testing.T) {
	// With XYZ order, pitch rotates around the world X axis regardless of yaw.
	n := NewGroup("n")
	n.SetRotation(math.Pi/2, math.Pi/2, 0)
	updateWorldTransform(n, identityMat4, false)
	// +Z -> yaw -> +X -> pitch about X leaves it on +X.
	assertVec(t, "rotated", n.LocalToWorld(Vec3{Z: 1}), Vec3{X: 1})
}
