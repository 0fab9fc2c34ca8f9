// Package ecs provides ECS adapters for starmap.
package ecs

import (
	"github.com/stellarlight/starmap"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for map interaction events.
// Subscribe to this in your ECS systems to receive selection, hover,
// activation, drag and zoom events.
var InteractionEventType = events.NewEventType[starmap.InteractionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are published to InteractionEventType and delivered when the world
// processes its events.
func NewDonburiSink(world donburi.World) starmap.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event starmap.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
