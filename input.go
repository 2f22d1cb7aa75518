package musclemap

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const defaultDragDeadZone = 4.0 // pixels

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// --- Callback contexts ---

// PointerContext is passed to pointer down, up, and move callbacks.
// Coordinates are pixels relative to the surface's top-left.
type PointerContext struct {
	X, Y float64
	// DeltaX and DeltaY are the movement since the previous pointer event.
	DeltaX, DeltaY float64
	// Down reports whether the button is held.
	Down   bool
	Button MouseButton
}

// ClickContext is passed to click callbacks.
type ClickContext struct {
	X, Y float64
	// Travel is the farthest the pointer got from the press position
	// during the gesture.
	Travel float64
	Button MouseButton
}

// ResizeContext is passed to resize callbacks.
type ResizeContext struct {
	Width, Height int
}

// --- Per-pointer state ---

type pointerState struct {
	down   bool
	startX float64
	startY float64
	lastX  float64
	lastY  float64
	travel float64
	button MouseButton // button captured at press time
	touch  bool        // the current press came from a touch
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type resizeHandler struct {
	id uint32
	fn func(ResizeContext)
}

type handlerRegistry struct {
	pointerDown []pointerHandler
	pointerUp   []pointerHandler
	pointerMove []pointerHandler
	click       []clickHandler
	resize      []resizeHandler
	nextID      uint32
}

// count returns the number of registered callbacks across all events.
func (r *handlerRegistry) count() int {
	return len(r.pointerDown) + len(r.pointerUp) + len(r.pointerMove) +
		len(r.click) + len(r.resize)
}

// clear drops every registered callback.
func (r *handlerRegistry) clear() {
	r.pointerDown = nil
	r.pointerUp = nil
	r.pointerMove = nil
	r.click = nil
	r.resize = nil
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removeHandler(h.reg.pointerDown, h.id, func(p pointerHandler) uint32 { return p.id })
	case EventPointerUp:
		h.reg.pointerUp = removeHandler(h.reg.pointerUp, h.id, func(p pointerHandler) uint32 { return p.id })
	case EventPointerMove:
		h.reg.pointerMove = removeHandler(h.reg.pointerMove, h.id, func(p pointerHandler) uint32 { return p.id })
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, h.id, func(c clickHandler) uint32 { return c.id })
	case EventResize:
		h.reg.resize = removeHandler(h.reg.resize, h.id, func(r resizeHandler) uint32 { return r.id })
	}
}

func removeHandler[T any](s []T, id uint32, idOf func(T) uint32) []T {
	for i := range s {
		if idOf(s[i]) == id {
			copy(s[i:], s[i+1:])
			var zero T
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerDown = append(s.handlers.pointerDown, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerDown}
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerUp = append(s.handlers.pointerUp, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerUp}
}

// OnPointerMove registers a scene-level callback for pointer move events,
// with or without the button held.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerMove = append(s.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerMove}
}

// OnClick registers a scene-level callback for click events. A click fires
// after pointer up unless the gesture travelled farther than the click
// suppression distance.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventClick}
}

// OnResize registers a callback fired after the surface size changes.
func (s *Scene) OnResize(fn func(ResizeContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.resize = append(s.handlers.resize, resizeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventResize}
}

// SetClickSuppressDistance sets how far in pixels the pointer may travel
// between press and release and still produce a click. Negative values
// disable suppression so every release clicks.
func (s *Scene) SetClickSuppressDistance(pixels float64) {
	s.clickSuppress = pixels
}

// SetLivePointer enables polling of the real mouse and touch state in
// Update. Run enables it; headless callers drive input by injection.
func (s *Scene) SetLivePointer(enabled bool) {
	s.livePointer = enabled
}

// --- Input processing ---

// processInput is called from Scene.Update() to handle pointer input.
// Injected events take priority over real input for the frame.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if !s.livePointer {
		return
	}

	ps := &s.pointer
	var touches [1]ebiten.TouchID
	if ids := ebiten.AppendTouchIDs(touches[:0]); len(ids) > 0 {
		tx, ty := ebiten.TouchPosition(ids[0])
		ps.touch = true
		s.processPointer(float64(tx), float64(ty), true, MouseButtonLeft)
		return
	}
	if ps.touch {
		// Touch lifted: release where it was last seen.
		ps.touch = false
		s.processPointer(ps.lastX, ps.lastY, false, MouseButtonLeft)
		return
	}

	cx, cy := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.processPointer(float64(cx), float64(cy), pressed, MouseButtonLeft)
}

// processPointer runs the pointer state machine.
func (s *Scene) processPointer(x, y float64, pressed bool, button MouseButton) {
	ps := &s.pointer

	if pressed && !ps.down {
		// Just pressed: capture button for the duration of this interaction.
		ps.down = true
		ps.button = button
		ps.startX = x
		ps.startY = y
		ps.lastX = x
		ps.lastY = y
		ps.travel = 0

		s.firePointerDown(PointerContext{X: x, Y: y, Down: true, Button: button})
	} else if !pressed && ps.down {
		// Just released: use button from press start. Movement since the
		// last tick is delivered as a move before the release.
		s.trackTravel(x, y)
		if x != ps.lastX || y != ps.lastY {
			move := PointerContext{X: x, Y: y, DeltaX: x - ps.lastX, DeltaY: y - ps.lastY, Down: true, Button: ps.button}
			ps.lastX = x
			ps.lastY = y
			s.firePointerMove(move)
		}
		up := PointerContext{X: x, Y: y, Button: ps.button}
		click := ClickContext{X: x, Y: y, Travel: ps.travel, Button: ps.button}
		ps.down = false

		s.firePointerUp(up)
		if s.clickSuppress < 0 || click.Travel <= s.clickSuppress {
			s.fireClick(click)
		}
	} else if pressed && ps.down {
		if x != ps.lastX || y != ps.lastY {
			s.trackTravel(x, y)
			ctx := PointerContext{X: x, Y: y, DeltaX: x - ps.lastX, DeltaY: y - ps.lastY, Down: true, Button: ps.button}
			ps.lastX = x
			ps.lastY = y
			s.firePointerMove(ctx)
		}
	} else if !pressed && !ps.down {
		// Hover move.
		if x != ps.lastX || y != ps.lastY {
			ctx := PointerContext{X: x, Y: y, DeltaX: x - ps.lastX, DeltaY: y - ps.lastY, Button: button}
			ps.lastX = x
			ps.lastY = y
			s.firePointerMove(ctx)
		}
	}
}

// trackTravel records the farthest distance from the press position.
func (s *Scene) trackTravel(x, y float64) {
	ps := &s.pointer
	dx := x - ps.startX
	dy := y - ps.startY
	if d := math.Sqrt(dx*dx + dy*dy); d > ps.travel {
		ps.travel = d
	}
}

// --- Event dispatch ---

func (s *Scene) firePointerDown(ctx PointerContext) {
	for _, h := range s.handlers.pointerDown {
		h.fn(ctx)
	}
}

func (s *Scene) firePointerUp(ctx PointerContext) {
	for _, h := range s.handlers.pointerUp {
		h.fn(ctx)
	}
}

func (s *Scene) firePointerMove(ctx PointerContext) {
	for _, h := range s.handlers.pointerMove {
		h.fn(ctx)
	}
}

func (s *Scene) fireClick(ctx ClickContext) {
	for _, h := range s.handlers.click {
		h.fn(ctx)
	}
}

func (s *Scene) fireResize(w, h int) {
	ctx := ResizeContext{Width: w, Height: h}
	for _, r := range s.handlers.resize {
		r.fn(ctx)
	}
}
