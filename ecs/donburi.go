package ecs

import (
	"time"

	"github.com/phanxgames/marquee"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EngineEventType carries every engine event unchanged.
var EngineEventType = events.NewEventType[marquee.Event]()

// SwapEvent is a swap lock transition for systems that only care about the
// panel cards.
type SwapEvent struct {
	Panel    marquee.Panel
	Accepted bool // false for a click dropped during the lock
	Released bool // the lock ended; Panel is the card now in front
	At       time.Duration
}

// SwapEventType carries swap_accepted, swap_rejected and lock_released.
var SwapEventType = events.NewEventType[SwapEvent]()

// CounterEvent is a counter run starting or settling on Value.
type CounterEvent struct {
	Name    string
	Value   float64
	Settled bool
	At      time.Duration
}

// CounterEventType carries counter_started and counter_settled.
var CounterEventType = events.NewEventType[CounterEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Every event
// is published to EngineEventType; swap and counter events are also
// published to SwapEventType and CounterEventType. Consume them with
// Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) marquee.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(ev marquee.Event) {
	EngineEventType.Publish(s.world, ev)

	switch ev.Type {
	case marquee.EventSwapAccepted, marquee.EventSwapRejected, marquee.EventLockReleased:
		SwapEventType.Publish(s.world, SwapEvent{
			Panel:    ev.Panel,
			Accepted: ev.Type == marquee.EventSwapAccepted,
			Released: ev.Type == marquee.EventLockReleased,
			At:       ev.At,
		})
	case marquee.EventCounterStarted, marquee.EventCounterSettled:
		CounterEventType.Publish(s.world, CounterEvent{
			Name:    ev.Name,
			Value:   ev.Value,
			Settled: ev.Type == marquee.EventCounterSettled,
			At:      ev.At,
		})
	}
}
