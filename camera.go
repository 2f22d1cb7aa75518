package musclemap

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera is a perspective camera rendering into a Width×Height pixel surface.
type Camera struct {
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Near and Far bound the depth range. Sized for the model's scale.
	Near, Far float64
	// Position is the eye position in world space.
	Position Vec3
	// Target is the world-space point the camera looks at.
	Target Vec3
	// Up is the camera's up vector (default +Y).
	Up Vec3

	width, height float64
	aspect        float64

	viewMatrix    Mat4
	invViewMatrix Mat4
	projMatrix    Mat4
	viewProj      Mat4
	dirty         bool
}

// newCamera creates a Camera with the given projection and surface size.
func newCamera(fov, near, far float64, width, height float64) *Camera {
	c := &Camera{
		FOV:    fov,
		Near:   near,
		Far:    far,
		Up:     Vec3{Y: 1},
		aspect: 1,
		dirty:  true,
	}
	c.SetSize(width, height)
	return c
}

// SetSize updates the surface size and recomputes the aspect ratio and
// projection. Returns false and leaves the camera unchanged when either
// dimension is not positive.
func (c *Camera) SetSize(width, height float64) bool {
	if width <= 0 || height <= 0 || math.IsNaN(width) || math.IsNaN(height) {
		return false
	}
	c.width = width
	c.height = height
	c.aspect = width / height
	c.dirty = true
	return true
}

// Aspect returns the current width/height ratio.
func (c *Camera) Aspect() float64 {
	return c.aspect
}

// Size returns the surface size in pixels.
func (c *Camera) Size() (width, height float64) {
	return c.width, c.height
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target Vec3) {
	c.Target = target
	c.dirty = true
}

// MarkDirty forces a recomputation of the view and projection matrices.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// computeMatrices recomputes the cached matrices if dirty.
func (c *Camera) computeMatrices() {
	if !c.dirty {
		return
	}
	c.dirty = false
	up := c.Up
	if r3.Norm(up) == 0 {
		up = Vec3{Y: 1}
	}
	c.viewMatrix = lookAt(c.Position, c.Target, up)
	c.invViewMatrix = c.viewMatrix.InverseAffine()
	c.projMatrix = perspective(c.FOV, c.aspect, c.Near, c.Far)
	c.viewProj = Mat4Mul(c.projMatrix, c.viewMatrix)
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Camera) ViewMatrix() Mat4 {
	c.computeMatrices()
	return c.viewMatrix
}

// ProjectionMatrix returns the camera-to-clip matrix.
func (c *Camera) ProjectionMatrix() Mat4 {
	c.computeMatrices()
	return c.projMatrix
}

// WorldToScreen projects a world-space point to pixel coordinates. ok is
// false when the point is behind the camera.
func (c *Camera) WorldToScreen(p Vec3) (sx, sy float64, ok bool) {
	c.computeMatrices()
	x, y, _, w := c.viewProj.MulPointW(p)
	if w <= 0 {
		return 0, 0, false
	}
	ndcX, ndcY := x/w, y/w
	sx = (ndcX + 1) / 2 * c.width
	sy = (1 - ndcY) / 2 * c.height
	return sx, sy, true
}

// ScreenToNDC converts a pixel coordinate (relative to the surface's
// top-left) to normalized device coordinates in [-1, 1], Y up.
func (c *Camera) ScreenToNDC(sx, sy float64) (x, y float64) {
	if c.width <= 0 || c.height <= 0 {
		return 0, 0
	}
	return sx/c.width*2 - 1, -(sy/c.height)*2 + 1
}

// Ray is a half-line starting at Origin. Direction is unit length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r3.Add(r.Origin, r3.Scale(t, r.Direction))
}

// RayFromNDC returns the world-space ray from the eye through the given
// normalized device coordinate.
func (c *Camera) RayFromNDC(x, y float64) Ray {
	c.computeMatrices()
	tanHalf := math.Tan(c.FOV * math.Pi / 360)
	dirCam := Vec3{X: x * c.aspect * tanHalf, Y: y * tanHalf, Z: -1}
	dir := r3.Unit(c.invViewMatrix.MulDir(dirCam))
	return Ray{Origin: c.Position, Direction: dir}
}
