// Package ecs provides ECS adapters for marquee's engine events.
//
// The primary adapter is [NewDonburiSink], which bridges engine transitions
// (flags rising and falling, accepted and dropped swaps, hover changes,
// counters starting and settling) into a [Donburi] world as typed events.
// Subscribe to [EngineEventType] for everything, or to [SwapEventType] and
// [CounterEventType] for the card and counter transitions alone.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
