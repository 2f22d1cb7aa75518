package musclemap

import "math"

// OrbitController turns pointer drags into model rotation: horizontal
// movement yaws freely, vertical movement pitches within ±PitchLimit, and
// roll is held at zero.
type OrbitController struct {
	YawSpeed   float64
	PitchSpeed float64
	PitchLimit float64

	dragging     bool
	lastX, lastY float64
}

// NewOrbitController creates a controller from cfg.
func NewOrbitController(cfg OrbitConfig) *OrbitController {
	return &OrbitController{
		YawSpeed:   cfg.YawSpeed,
		PitchSpeed: cfg.PitchSpeed,
		PitchLimit: cfg.PitchLimit,
	}
}

// Begin starts a drag at (x, y).
func (o *OrbitController) Begin(x, y float64) {
	o.dragging = true
	o.lastX = x
	o.lastY = y
}

// Move rotates target by the movement since the last event. Returns false
// when no drag is in progress.
func (o *OrbitController) Move(target *Node, x, y float64) bool {
	if !o.dragging {
		return false
	}
	dx := x - o.lastX
	dy := y - o.lastY
	o.lastX = x
	o.lastY = y
	o.Rotate(target, dx, dy)
	return true
}

// End stops the current drag.
func (o *OrbitController) End() {
	o.dragging = false
}

// Dragging reports whether a drag is in progress.
func (o *OrbitController) Dragging() bool {
	return o.dragging
}

// Rotate applies a pixel delta to target's rotation. A nil target is a no-op.
func (o *OrbitController) Rotate(target *Node, dx, dy float64) {
	if target == nil || target.IsDisposed() {
		return
	}
	r := target.Rotation
	yaw := r.Y + dx*o.YawSpeed
	pitch := clampPitch(r.X+dy*o.PitchSpeed, o.PitchLimit)
	target.SetRotation(pitch, yaw, 0)
}

func clampPitch(p, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, p))
}
