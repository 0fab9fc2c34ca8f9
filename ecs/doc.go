// Package ecs bridges starmap interaction events into an ECS world.
//
// [NewDonburiSink] publishes every event a [starmap.Map] emits (pointer
// down/up, select, hover, activate, drag, zoom) into a [Donburi] world as
// typed events. Subscribe to [InteractionEventType] to receive them:
//
//	sink := ecs.NewDonburiSink(world)
//	m.SetEventSink(sink)
//
//	ecs.InteractionEventType.Subscribe(world, func(w donburi.World, e starmap.InteractionEvent) {
//		if e.Type == starmap.EventActivate {
//			openSystemView(e.ObjectID)
//		}
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
