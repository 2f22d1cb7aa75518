package musclemap

// syntheticPointerEvent is one queued left-button sample in surface pixels.
// Update feeds it to processPointer exactly as it would a polled mouse
// position, so injected gestures select and orbit like real ones.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
}

func (s *Scene) inject(x, y float64, pressed bool) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: pressed, button: MouseButtonLeft})
}

// InjectPress queues a button-down sample. A press over a muscle does not
// select it; selection happens on the matching release.
func (s *Scene) InjectPress(x, y float64) { s.inject(x, y, true) }

// InjectMove queues a sample with the button held. After InjectPress it
// rotates the model by the distance from the previous sample.
func (s *Scene) InjectMove(x, y float64) { s.inject(x, y, true) }

// InjectRelease queues a button-up sample. It ends any orbit and produces a
// click unless the gesture travelled past the suppression distance.
func (s *Scene) InjectRelease(x, y float64) { s.inject(x, y, false) }

// InjectClick queues a press and release at one point, the gesture that
// selects the muscle under (x, y). It spans two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues an orbit gesture spread evenly over frames frames:
// press at the start point, frames-2 held samples along the straight line,
// release at the end point. Fewer than 2 frames is treated as 2.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 2)
	s.InjectPress(fromX, fromY)
	dx := (toX - fromX) / float64(frames-1)
	dy := (toY - fromY) / float64(frames-1)
	for i := 1; i < frames-1; i++ {
		s.InjectMove(fromX+dx*float64(i), fromY+dy*float64(i))
	}
	s.InjectRelease(toX, toY)
}

// PendingInjections reports how many samples are still queued.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput consumes at most one queued sample per frame and
// reports whether it did. While samples remain, live pointer polling is
// skipped so scripted gestures are not interleaved with the real mouse.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	s.injectQueue = append(s.injectQueue[:0], s.injectQueue[1:]...)
	s.processPointer(evt.x, evt.y, evt.pressed, evt.button)
	return true
}
