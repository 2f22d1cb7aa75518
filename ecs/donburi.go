package ecs

import (
	"github.com/phanxgames/musclemap"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SelectionEventType is the Donburi event type for muscle selections.
var SelectionEventType = events.NewEventType[musclemap.SelectionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates a SelectionStore backed by a Donburi world.
// Selections are published to SelectionEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) musclemap.SelectionStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitSelection(event musclemap.SelectionEvent) {
	SelectionEventType.Publish(s.world, event)
}
