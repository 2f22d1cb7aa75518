package musclemap

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mat4 is a 4×4 matrix stored row-major. Value type for zero heap allocation.
type Mat4 [16]float64

// identityMat4 is the identity matrix.
var identityMat4 = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// MulPoint transforms a 3D point (w=1) by the matrix. The projective row is
// ignored; use MulPointW for projection matrices.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3],
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7],
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11],
	}
}

// MulPointW transforms a 3D point (w=1) and returns the homogeneous result.
func (m Mat4) MulPointW(v Vec3) (x, y, z, w float64) {
	x = m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]
	y = m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]
	z = m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]
	w = m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]
	return
}

// MulDir transforms a direction (w=0): translation is ignored.
func (m Mat4) MulDir(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z,
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z,
	}
}

// InverseAffine inverts a matrix whose bottom row is (0, 0, 0, 1).
// Returns the identity matrix if the linear part is singular.
func (m Mat4) InverseAffine() Mat4 {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[4], m[5], m[6]
	g, h, k := m[8], m[9], m[10]

	det := a*(e*k-f*h) - b*(d*k-f*g) + c*(d*h-e*g)
	if det > -1e-12 && det < 1e-12 {
		return identityMat4
	}
	inv := 1.0 / det

	r00 := (e*k - f*h) * inv
	r01 := (c*h - b*k) * inv
	r02 := (b*f - c*e) * inv
	r10 := (f*g - d*k) * inv
	r11 := (a*k - c*g) * inv
	r12 := (c*d - a*f) * inv
	r20 := (d*h - e*g) * inv
	r21 := (b*g - a*h) * inv
	r22 := (a*e - b*d) * inv

	tx, ty, tz := m[3], m[7], m[11]
	return Mat4{
		r00, r01, r02, -(r00*tx + r01*ty + r02*tz),
		r10, r11, r12, -(r10*tx + r11*ty + r12*tz),
		r20, r21, r22, -(r20*tx + r21*ty + r22*tz),
		0, 0, 0, 1,
	}
}

// rotX returns a rotation around the X axis. Angle in radians.
func rotX(a float64) Mat4 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// rotY returns a rotation around the Y axis.
func rotY(a float64) Mat4 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// rotZ returns a rotation around the Z axis.
func rotZ(a float64) Mat4 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// composeTRS builds Translate(t) × Rx(r.X) × Ry(r.Y) × Rz(r.Z) × Scale(s).
// Rotation order is XYZ: the X (pitch) rotation is applied last.
func composeTRS(t, r, s Vec3) Mat4 {
	rot := Mat4Mul(Mat4Mul(rotX(r.X), rotY(r.Y)), rotZ(r.Z))
	return Mat4{
		rot[0] * s.X, rot[1] * s.Y, rot[2] * s.Z, t.X,
		rot[4] * s.X, rot[5] * s.Y, rot[6] * s.Z, t.Y,
		rot[8] * s.X, rot[9] * s.Y, rot[10] * s.Z, t.Z,
		0, 0, 0, 1,
	}
}

// composeQuatTRS builds Translate(t) × R(q) × Scale(s) from a unit quaternion
// (x, y, z, w), the rotation encoding used by glTF.
func composeQuatTRS(t Vec3, q [4]float64, s Vec3) Mat4 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	return Mat4{
		(1 - 2*(yy+zz)) * s.X, 2 * (xy - wz) * s.Y, 2 * (xz + wy) * s.Z, t.X,
		2 * (xy + wz) * s.X, (1 - 2*(xx+zz)) * s.Y, 2 * (yz - wx) * s.Z, t.Y,
		2 * (xz - wy) * s.X, 2 * (yz + wx) * s.Y, (1 - 2*(xx+yy)) * s.Z, t.Z,
		0, 0, 0, 1,
	}
}

// lookAt returns the view matrix for an eye at eye looking toward target.
func lookAt(eye, target, up Vec3) Mat4 {
	f := r3.Unit(r3.Sub(target, eye))
	r := r3.Unit(r3.Cross(f, up))
	u := r3.Cross(r, f)
	return Mat4{
		r.X, r.Y, r.Z, -r3.Dot(r, eye),
		u.X, u.Y, u.Z, -r3.Dot(u, eye),
		-f.X, -f.Y, -f.Z, r3.Dot(f, eye),
		0, 0, 0, 1,
	}
}

// perspective returns an OpenGL-style projection matrix. fovY is in degrees.
func perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY*math.Pi/360)
	nf := 1 / (near - far)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, 2 * far * near * nf,
		0, 0, -1, 0,
	}
}
