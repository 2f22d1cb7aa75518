package musclemap

import "testing"

func TestInjectClick(t *testing.T) {
	s := newTestScene()
	var clicked bool
	s.OnClick(func(ctx ClickContext) {
		clicked = true
		if ctx.X != 50 || ctx.Y != 60 {
			t.Errorf("click at (%v, %v), want (50, 60)", ctx.X, ctx.Y)
		}
	})

	s.InjectClick(50, 60)
	if s.PendingInjections() != 2 {
		t.Fatalf("expected 2 queued events, got %d", s.PendingInjections())
	}

	// Frame 1: press
	s.processInput()
	if s.PendingInjections() != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", s.PendingInjections())
	}
	if clicked {
		t.Error("click should not fire on press frame")
	}

	// Frame 2: release, click fires
	s.processInput()
	if s.PendingInjections() != 0 {
		t.Fatalf("expected 0 remaining events after frame 2, got %d", s.PendingInjections())
	}
	if !clicked {
		t.Error("click should fire on release frame")
	}
}

func TestInjectDrag(t *testing.T) {
	s := newTestScene()
	var events []string
	var moves []PointerContext
	s.OnPointerDown(func(PointerContext) { events = append(events, "down") })
	s.OnPointerMove(func(ctx PointerContext) {
		events = append(events, "move")
		moves = append(moves, ctx)
	})
	s.OnPointerUp(func(PointerContext) { events = append(events, "up") })
	s.OnClick(func(ClickContext) { events = append(events, "click") })

	// frame 0: press at (10,10)
	// frames 1-3: moves to 57.5, 105, 152.5
	// frame 4: move to and release at (200, 200)
	s.InjectDrag(10, 10, 200, 200, 5)
	if s.PendingInjections() != 5 {
		t.Fatalf("expected 5 queued events, got %d", s.PendingInjections())
	}
	for i := 0; i < 5; i++ {
		s.processInput()
	}

	want := []string{"down", "move", "move", "move", "move", "up"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %s, want %s", i, events[i], want[i])
		}
	}
	if moves[0].X != 57.5 || moves[0].DeltaX != 47.5 {
		t.Errorf("first move = %+v", moves[0])
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	s := newTestScene()
	s.InjectDrag(0, 0, 10, 10, 0)
	if s.PendingInjections() != 2 {
		t.Errorf("expected press+release, got %d events", s.PendingInjections())
	}
}

func TestInjectPressMoveRelease(t *testing.T) {
	s := newTestScene()
	var down, up int
	var moved bool
	s.OnPointerDown(func(PointerContext) { down++ })
	s.OnPointerMove(func(ctx PointerContext) { moved = ctx.Down })
	s.OnPointerUp(func(PointerContext) { up++ })

	s.InjectPress(5, 5)
	s.InjectMove(6, 7)
	s.InjectRelease(6, 7)
	for s.PendingInjections() > 0 {
		s.processInput()
	}
	if down != 1 || up != 1 || !moved {
		t.Errorf("down=%d up=%d moved=%v", down, up, moved)
	}
}

func TestInjectOneEventPerFrame(t *testing.T) {
	s := newTestScene()
	s.InjectClick(1, 1)
	s.InjectClick(2, 2)
	s.Update()
	if s.PendingInjections() != 3 {
		t.Errorf("Update should consume exactly one event, %d left", s.PendingInjections())
	}
}
