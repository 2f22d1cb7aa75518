package musclemap

import (
	"time"
)

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	compileTime   time.Duration
	submitTime    time.Duration
	faceCount     int
	drawCallCount int
}

// debugLog writes timing and draw-call stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("frame",
		"compile", stats.compileTime,
		"submit", stats.submitTime,
		"total", stats.compileTime+stats.submitTime,
		"faces", stats.faceCount,
		"draw_calls", stats.drawCallCount,
		"handlers", s.handlers.count(),
	)
}
