// internal/sched/actions.go

// Package sched carries the device's cross-context signalling: a sticky
// action bitset posted from tick context and drained by the run loop,
// plus the 16-phase ticker that subdivides each second.
package sched

import "sync/atomic"

// Action is one sticky request bit.
type Action uint32

// The four cross-context actions, drained in this priority order.
const (
	// ActionIncrement advances the clock by one second.
	ActionIncrement Action = 1 << iota
	// ActionAlarmCheck evaluates alarm matches against the current time.
	ActionAlarmCheck
	// ActionAlarmAssert raises the interrupt lines for flagged, enabled alarms.
	ActionAlarmAssert
	// ActionAlarmReset drops all interrupt lines unconditionally.
	ActionAlarmReset
)

// Actions is a level-sensitive request set, not a queue. Posting an
// already-pending action is a no-op; delivery is at-least-once with no
// double counting.
type Actions struct {
	bits   uint32
	wakeup chan struct{}
}

// NewActions returns an empty action set.
func NewActions() *Actions {
	return &Actions{wakeup: make(chan struct{}, 1)}
}

// Post marks act pending. Safe from any goroutine; never blocks.
func (a *Actions) Post(act Action) {
	for {
		old := atomic.LoadUint32(&a.bits)
		if old&uint32(act) == uint32(act) {
			break
		}
		if atomic.CompareAndSwapUint32(&a.bits, old, old|uint32(act)) {
			break
		}
	}
	select {
	case a.wakeup <- struct{}{}:
	default:
	}
}

// Take clears act and reports whether it was pending.
func (a *Actions) Take(act Action) bool {
	for {
		old := atomic.LoadUint32(&a.bits)
		if old&uint32(act) == 0 {
			return false
		}
		if atomic.CompareAndSwapUint32(&a.bits, old, old&^uint32(act)) {
			return true
		}
	}
}

// Pending reports whether any action is requested.
func (a *Actions) Pending() bool {
	return atomic.LoadUint32(&a.bits) != 0
}

// Wakeup returns the channel the run loop blocks on. It holds at most
// one token; coalesced posts share it.
func (a *Actions) Wakeup() <-chan struct{} {
	return a.wakeup
}
