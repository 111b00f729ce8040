package marquee

import "time"

// EventType identifies an engine transition.
type EventType uint8

const (
	EventFlagRaised     EventType = iota // a delayed flag rose
	EventFlagLowered                     // a delayed flag fell
	EventSwapAccepted                    // a toggle entered TransitionLock
	EventSwapRejected                    // a toggle arrived during TransitionLock and was dropped
	EventLockReleased                    // TransitionLock ended
	EventHover                           // a panel's hover flag changed
	EventCounterStarted                  // a counter began a run
	EventCounterSettled                  // a counter reached its target
)

var eventNames = [...]string{
	EventFlagRaised:     "flag_raised",
	EventFlagLowered:    "flag_lowered",
	EventSwapAccepted:   "swap_accepted",
	EventSwapRejected:   "swap_rejected",
	EventLockReleased:   "lock_released",
	EventHover:          "hover",
	EventCounterStarted: "counter_started",
	EventCounterSettled: "counter_settled",
}

// String returns the snake_case name of the event type.
func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event describes one engine transition.
type Event struct {
	Type  EventType
	Name  string        // flag or counter name, empty for swap events
	Panel Panel         // valid for swap and hover events
	Value float64       // counter target, or 1/0 for hover on/off
	At    time.Duration // engine clock time of the frame or input
}

// EventSink receives engine events, e.g. to bridge them into an ECS world.
type EventSink interface {
	EmitEvent(event Event)
}
