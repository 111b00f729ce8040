package marquee

// inputKind identifies a synthetic user input.
type inputKind uint8

const (
	inputClick inputKind = iota
	inputEnter
	inputLeave
	inputHoverOn
	inputHoverOff
)

// inputEvent is a single injected input, consumed on a later frame exactly
// like a real handler call.
type inputEvent struct {
	kind  inputKind
	panel Panel
}

// delivery is a counter target handed over from another goroutine.
type delivery struct {
	counter *Counter
	value   float64
}

// InjectClick queues a click on p. The click is processed on the next frame,
// after the lock has been released for that frame's time.
func (e *Engine) InjectClick(p Panel) {
	e.injectQueue = append(e.injectQueue, inputEvent{kind: inputClick, panel: p})
}

// InjectEnter queues the pointer entering p's card.
func (e *Engine) InjectEnter(p Panel) {
	e.injectQueue = append(e.injectQueue, inputEvent{kind: inputEnter, panel: p})
}

// InjectLeave queues the pointer leaving p's card.
func (e *Engine) InjectLeave(p Panel) {
	e.injectQueue = append(e.injectQueue, inputEvent{kind: inputLeave, panel: p})
}

// InjectHover queues a raw hover change for p.
func (e *Engine) InjectHover(p Panel, on bool) {
	kind := inputHoverOff
	if on {
		kind = inputHoverOn
	}
	e.injectQueue = append(e.injectQueue, inputEvent{kind: kind, panel: p})
}

// InjectEnterLeave is a convenience that queues an enter followed by a leave
// on p. Consumes two frames.
func (e *Engine) InjectEnterLeave(p Panel) {
	e.InjectEnter(p)
	e.InjectLeave(p)
}

// Pending returns the number of queued input events.
func (e *Engine) Pending() int { return len(e.injectQueue) }

// processInjectedInput pops one queued event and applies it. Returns true if
// an event was consumed.
func (e *Engine) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch evt.kind {
	case inputClick:
		e.Click(evt.panel)
	case inputEnter:
		e.PointerEnter(evt.panel)
	case inputLeave:
		e.PointerLeave(evt.panel)
	case inputHoverOn:
		e.SetHover(evt.panel, true)
	case inputHoverOff:
		e.SetHover(evt.panel, false)
	}
	return true
}

// Deliver hands a new target to c. Safe to call from any goroutine; the value
// is applied on the engine's goroutine during the next Update, before the
// counters are stepped.
func (e *Engine) Deliver(c *Counter, value float64) {
	if c == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return
	}
	e.deliveries = append(e.deliveries, delivery{counter: c, value: value})
}

// drainDeliveries applies every queued delivery in arrival order.
func (e *Engine) drainDeliveries() {
	e.mu.Lock()
	pending := e.deliveries
	e.deliveries = nil
	e.mu.Unlock()

	for _, d := range pending {
		d.counter.Update(d.value)
	}
}
