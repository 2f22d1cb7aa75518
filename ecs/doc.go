// Package ecs provides ECS adapters for musclemap's selection events.
//
// The primary adapter is [NewDonburiStore], which bridges muscle selections
// into a [Donburi] world as typed events. Subscribe to [SelectionEventType]
// in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	viewer.SetSelectionStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
