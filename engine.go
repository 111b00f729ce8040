package marquee

import (
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Engine owns the reveal cascade, the panel swap state machine and the
// counters, and advances them once per display frame. All methods except
// Deliver must be called from the goroutine that calls Update.
type Engine struct {
	clock    Clock
	cascade  *Cascade
	swap     *PanelSwap
	counters []*Counter
	viewport *Viewport
	gates    [2]Signal

	logger *zap.Logger
	sink   EventSink
	debug  bool

	now      time.Duration
	frame    uint64
	disposed bool

	counterDuration time.Duration
	countUpOffset   float64

	// Input queued by Inject*; consumed one event per frame.
	injectQueue []inputEvent

	// Counter targets delivered from other goroutines.
	mu         sync.Mutex
	deliveries []delivery
}

// NewEngine creates an engine driven by clock. A nil clock uses RealClock.
func NewEngine(clock Clock) *Engine {
	if clock == nil {
		clock = RealClock()
	}
	return &Engine{
		clock:           clock,
		cascade:         NewCascade(),
		swap:            NewPanelSwap(DefaultSwapLock),
		logger:          zap.NewNop(),
		counterDuration: DefaultCounterDuration,
		countUpOffset:   DefaultCountUpOffset,
	}
}

// SetLogger replaces the engine's logger. A nil logger disables logging.
func (e *Engine) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e.logger = logger
}

// SetEventSink sets the optional event bridge.
func (e *Engine) SetEventSink(sink EventSink) {
	e.sink = sink
}

// SetDebugMode enables per-frame debug logging.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// SetViewport attaches a viewport whose scroll tween is advanced before the
// cascade on every frame.
func (e *Engine) SetViewport(v *Viewport) {
	e.viewport = v
}

// Viewport returns the attached viewport, or nil.
func (e *Engine) Viewport() *Viewport { return e.viewport }

// Clock returns the engine's clock.
func (e *Engine) Clock() Clock { return e.clock }

// Now returns the clock time of the last frame.
func (e *Engine) Now() time.Duration { return e.now }

// Frame returns the number of frames processed.
func (e *Engine) Frame() uint64 { return e.frame }

// Cascade returns the engine's cascade.
func (e *Engine) Cascade() *Cascade { return e.cascade }

// Swap returns the engine's panel swap state machine.
func (e *Engine) Swap() *PanelSwap { return e.swap }

// Derive creates a delayed flag in the engine's cascade.
func (e *Engine) Derive(name string, upstream Signal, delay time.Duration) *DelayedFlag {
	return e.cascade.Derive(name, upstream, delay)
}

// NewCounter creates a counter gated by gate and registers it for stepping.
func (e *Engine) NewCounter(name string, gate Signal) *Counter {
	c := NewCounter(name, gate)
	c.SetDuration(e.counterDuration)
	c.SetCountUpOffset(e.countUpOffset)
	e.counters = append(e.counters, c)
	return c
}

// RemoveCounter unmounts c: its frame chain is cancelled, queued deliveries
// for it are dropped and it is no longer stepped. It reports whether c was
// registered.
func (e *Engine) RemoveCounter(c *Counter) bool {
	i := slices.Index(e.counters, c)
	if i < 0 {
		return false
	}
	e.counters = slices.Delete(e.counters, i, i+1)
	c.dispose()

	e.mu.Lock()
	e.deliveries = slices.DeleteFunc(e.deliveries, func(d delivery) bool { return d.counter == c })
	e.mu.Unlock()

	e.logger.Debug("counter removed", zap.String("counter", c.Name()))
	return true
}

// Counters returns the registered counters. The returned slice MUST NOT be
// mutated.
func (e *Engine) Counters() []*Counter { return e.counters }

// SetPanelGates sets the two reveal stages the layout reads: a fades both
// cards in, b settles the back card. A nil gate is always visible.
func (e *Engine) SetPanelGates(a, b Signal) {
	e.gates = [2]Signal{a, b}
}

// SetSwapLock changes the transition lock for subsequent toggles.
func (e *Engine) SetSwapLock(d time.Duration) {
	e.swap.SetLockDuration(d)
}

// SetCounterTiming changes duration and count-up offset for every counter.
func (e *Engine) SetCounterTiming(duration time.Duration, offset float64) {
	e.counterDuration = duration
	e.countUpOffset = offset
	for _, c := range e.counters {
		c.SetDuration(duration)
		c.SetCountUpOffset(offset)
	}
}

// Reveal returns the current panel reveal stages.
func (e *Engine) Reveal() Reveal {
	return Reveal{A: gateVisible(e.gates[0]), B: gateVisible(e.gates[1])}
}

func gateVisible(s Signal) bool {
	return s == nil || s.Visible()
}

// State returns the swap state.
func (e *Engine) State() SwapState { return e.swap.State() }

// Positions computes both panel targets from the current state. Targets are
// never cached.
func (e *Engine) Positions() (a, b PositionTarget) {
	return Layout(e.swap.State(), e.Reveal())
}

// Click toggles the swap at the current clock time. It reports whether the
// toggle was accepted; clicks during TransitionLock are dropped.
func (e *Engine) Click(p Panel) bool {
	if e.disposed {
		return false
	}
	now := e.clock.Now()
	e.releaseLock(now)
	if !e.swap.Toggle(now) {
		e.logger.Debug("swap click dropped",
			zap.Stringer("panel", p),
			zap.Duration("lock_remaining", e.swap.LockRemaining(now)))
		e.emit(Event{Type: EventSwapRejected, Panel: p, At: now})
		return false
	}
	st := e.swap.State()
	e.logger.Debug("swap accepted",
		zap.Stringer("panel", p),
		zap.Bool("swapped", st.Swapped),
		zap.Duration("lock", e.swap.LockDuration()))
	e.emit(Event{Type: EventSwapAccepted, Panel: p, At: now})
	return true
}

// releaseLock ends an expired transition lock. Clicks can arrive between
// frames, so both Click and Update call it.
func (e *Engine) releaseLock(now time.Duration) {
	if e.swap.Update(now) {
		e.emit(Event{Type: EventLockReleased, Panel: e.swap.State().Front(), At: now})
	}
}

// SetHover sets a panel's raw hover flag.
func (e *Engine) SetHover(p Panel, on bool) {
	if e.disposed {
		return
	}
	before := e.swap.State()
	e.swap.SetHover(p, on)
	e.emitHoverChanges(before)
}

// PointerEnter records the pointer entering a panel's card.
func (e *Engine) PointerEnter(p Panel) {
	if e.disposed {
		return
	}
	before := e.swap.State()
	e.swap.PointerEnter(p)
	e.emitHoverChanges(before)
}

// PointerLeave records the pointer leaving a panel's card.
func (e *Engine) PointerLeave(p Panel) {
	if e.disposed {
		return
	}
	before := e.swap.State()
	e.swap.PointerLeave(p)
	e.emitHoverChanges(before)
}

func (e *Engine) emitHoverChanges(before SwapState) {
	after := e.swap.State()
	for _, p := range [2]Panel{PanelA, PanelB} {
		if before.Hovered(p) == after.Hovered(p) {
			continue
		}
		v := 0.0
		if after.Hovered(p) {
			v = 1
		}
		e.emit(Event{Type: EventHover, Panel: p, Value: v, At: e.clock.Now()})
	}
}

// Update advances one frame. Within a frame the viewport scroll is applied
// first, then the cascade is derived, then the swap lock is released, then
// queued input and data are applied, and finally the counters are stepped,
// so nothing downstream reads an upstream value from the previous frame.
func (e *Engine) Update() {
	if e.disposed {
		return
	}
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	now := e.clock.Now()
	e.now = now
	e.frame++

	if e.viewport != nil {
		e.viewport.update(now)
	}

	for _, f := range e.cascade.Update(now) {
		typ := EventFlagLowered
		if f.Visible() {
			typ = EventFlagRaised
		}
		e.logger.Debug("flag changed",
			zap.String("flag", f.Name()),
			zap.Bool("visible", f.Visible()),
			zap.Duration("at", now))
		e.emit(Event{Type: typ, Name: f.Name(), At: now})
	}

	e.releaseLock(now)

	e.processInjectedInput()
	e.drainDeliveries()

	for _, c := range e.counters {
		wasActivated := c.activated
		settled := c.step(now)
		if !wasActivated && c.activated {
			e.logger.Debug("counter revealed",
				zap.String("counter", c.Name()),
				zap.Float64("from", c.start),
				zap.Float64("to", c.Target()))
		}
		if c.kicked {
			e.emit(Event{Type: EventCounterStarted, Name: c.Name(), Value: c.Target(), At: now})
		}
		if settled {
			e.emit(Event{Type: EventCounterSettled, Name: c.Name(), Value: c.Target(), At: now})
		}
	}

	if e.debug {
		e.debugLog(time.Since(t0))
	}
}

// Dispose cancels every pending reveal timer, the transition lock and every
// counter's frame chain. The engine keeps its last visuals and ignores all
// further input.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.mu.Lock()
	e.disposed = true
	e.deliveries = nil
	e.mu.Unlock()

	e.cascade.Dispose()
	e.swap.Dispose()
	for _, c := range e.counters {
		c.dispose()
	}
	if e.viewport != nil {
		e.viewport.scroll = nil
	}
	e.injectQueue = nil
	e.logger.Debug("engine disposed", zap.Uint64("frames", e.frame))
}

// IsDisposed reports whether Dispose has been called.
func (e *Engine) IsDisposed() bool { return e.disposed }

func (e *Engine) emit(ev Event) {
	if e.sink == nil {
		return
	}
	e.sink.EmitEvent(ev)
}

func (e *Engine) debugLog(elapsed time.Duration) {
	running := 0
	for _, c := range e.counters {
		if c.Running() {
			running++
		}
	}
	pending := 0
	for _, f := range e.cascade.Flags() {
		if f.Pending() {
			pending++
		}
	}
	st := e.swap.State()
	e.logger.Debug("frame",
		zap.Uint64("frame", e.frame),
		zap.Duration("now", e.now),
		zap.Duration("update", elapsed),
		zap.Int("pending_flags", pending),
		zap.Int("running_counters", running),
		zap.Bool("swapped", st.Swapped),
		zap.Bool("locked", st.Animating))
}
