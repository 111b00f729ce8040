package marquee

import (
	"context"
	"time"

	"github.com/qmuntal/stateless"
)

// DefaultSwapLock is how long a swap holds the transition lock.
const DefaultSwapLock = 500 * time.Millisecond

// SwapState is the logical state of the two-panel swap.
type SwapState struct {
	Swapped   bool // panel B holds the prominent slot
	Animating bool // transition lock held; toggles are dropped
	HoverA    bool
	HoverB    bool
}

// Locked reports whether the state is TransitionLock.
func (s SwapState) Locked() bool { return s.Animating }

// Front returns the panel occupying the prominent slot.
func (s SwapState) Front() Panel {
	if s.Swapped {
		return PanelB
	}
	return PanelA
}

// Hovered reports the hover flag for p.
func (s SwapState) Hovered(p Panel) bool {
	if p == PanelB {
		return s.HoverB
	}
	return s.HoverA
}

type swapPhase string

const (
	phaseIdle     swapPhase = "idle"
	phaseLocked   swapPhase = "locked"
	phaseDisposed swapPhase = "disposed"
)

type swapTrigger string

const (
	triggerToggle  swapTrigger = "toggle"
	triggerRelease swapTrigger = "release"
	triggerDispose swapTrigger = "dispose"
)

// PanelSwap is the swap state machine: Idle(false), Idle(true) and
// TransitionLock. A toggle inverts Swapped immediately and holds the lock
// until its deadline; toggles arriving while locked are rejected and not
// queued. Hover is accepted in every state.
//
// The idle and locked phases are run by a stateless machine. Every trigger
// carries the frame time; the release transition is guarded by the lock
// deadline.
type PanelSwap struct {
	state     SwapState
	lock      time.Duration
	lockUntil time.Duration
	machine   *stateless.StateMachine
}

// NewPanelSwap creates an unswapped, idle state machine with the given lock
// duration.
func NewPanelSwap(lock time.Duration) *PanelSwap {
	s := &PanelSwap{machine: stateless.NewStateMachine(phaseIdle)}
	s.SetLockDuration(lock)

	s.machine.Configure(phaseIdle).
		Permit(triggerToggle, phaseLocked).
		Permit(triggerDispose, phaseDisposed)

	s.machine.Configure(phaseLocked).
		OnEntryFrom(triggerToggle, s.enterLock).
		OnExit(func(context.Context, ...any) error {
			s.state.Animating = false
			return nil
		}).
		Permit(triggerRelease, phaseIdle, s.lockExpired).
		Permit(triggerDispose, phaseDisposed)

	return s
}

// State returns a copy of the current state.
func (s *PanelSwap) State() SwapState { return s.state }

// LockDuration returns the lock held by the next accepted toggle.
func (s *PanelSwap) LockDuration() time.Duration { return s.lock }

// SetLockDuration changes the lock for subsequent toggles. A lock already held
// keeps its deadline.
func (s *PanelSwap) SetLockDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.lock = d
}

// LockRemaining returns how long the current lock is still held at now.
func (s *PanelSwap) LockRemaining(now time.Duration) time.Duration {
	if !s.state.Animating || now >= s.lockUntil {
		return 0
	}
	return s.lockUntil - now
}

// Toggle requests a swap at time now. It reports whether the toggle was
// accepted; a toggle during TransitionLock is dropped.
func (s *PanelSwap) Toggle(now time.Duration) bool {
	s.release(now)
	return s.machine.Fire(triggerToggle, now) == nil
}

// Update releases the lock once its deadline is reached and reports whether
// it did so on this call.
func (s *PanelSwap) Update(now time.Duration) bool {
	return s.release(now)
}

func (s *PanelSwap) release(now time.Duration) bool {
	if s.phase() != phaseLocked {
		return false
	}
	return s.machine.Fire(triggerRelease, now) == nil
}

func (s *PanelSwap) phase() swapPhase {
	return s.machine.MustState().(swapPhase)
}

func (s *PanelSwap) disposed() bool { return s.phase() == phaseDisposed }

// enterLock runs on an accepted toggle. args[0] is the frame time.
func (s *PanelSwap) enterLock(_ context.Context, args ...any) error {
	now := args[0].(time.Duration)
	s.state.Swapped = !s.state.Swapped
	s.state.Animating = true
	s.lockUntil = now + s.lock
	return nil
}

func (s *PanelSwap) lockExpired(_ context.Context, args ...any) bool {
	return args[0].(time.Duration) >= s.lockUntil
}

// SetHover sets the raw hover flag for p.
func (s *PanelSwap) SetHover(p Panel, on bool) {
	if s.disposed() {
		return
	}
	if p == PanelB {
		s.state.HoverB = on
	} else {
		s.state.HoverA = on
	}
}

// PointerEnter records the pointer entering p's card. The back card peeks
// out from behind the front card, so entering it hovers both cards; entering
// the front card hovers only the front card.
func (s *PanelSwap) PointerEnter(p Panel) {
	s.pointer(p, true)
}

// PointerLeave mirrors PointerEnter.
func (s *PanelSwap) PointerLeave(p Panel) {
	s.pointer(p, false)
}

func (s *PanelSwap) pointer(p Panel, on bool) {
	if p != s.state.Front() {
		s.SetHover(p.Other(), on)
	}
	s.SetHover(p, on)
}

// Dispose cancels the lock timer. The swapped value is kept; further input is
// ignored.
func (s *PanelSwap) Dispose() {
	if s.disposed() {
		return
	}
	_ = s.machine.Fire(triggerDispose)
}
