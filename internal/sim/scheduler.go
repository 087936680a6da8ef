package sim

import (
	"slices"
	"time"
)

// FrameID identifies a pending frame request. Zero is never issued.
type FrameID uint64

// FrameFunc is invoked once per granted frame with the scheduler's clock.
type FrameFunc func(now time.Time)

// FrameScheduler grants one-shot frame callbacks, like a display refresh.
// Implementations call back on the goroutine that owns the simulation.
type FrameScheduler interface {
	// Now returns the current frame clock.
	Now() time.Time
	// RequestFrame schedules fn for the next frame.
	RequestFrame(fn FrameFunc) FrameID
	// CancelFrame drops a pending request. Unknown ids are ignored.
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	fn FrameFunc
}

// ManualScheduler is a FrameScheduler whose clock only moves on Advance.
// It drives headless runs and tests.
type ManualScheduler struct {
	now     time.Time
	nextID  FrameID
	pending []frameRequest
}

// NewManualScheduler creates a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now implements FrameScheduler.
func (m *ManualScheduler) Now() time.Time {
	return m.now
}

// RequestFrame implements FrameScheduler.
func (m *ManualScheduler) RequestFrame(fn FrameFunc) FrameID {
	m.nextID++
	m.pending = append(m.pending, frameRequest{id: m.nextID, fn: fn})
	return m.nextID
}

// CancelFrame implements FrameScheduler.
func (m *ManualScheduler) CancelFrame(id FrameID) {
	m.pending = slices.DeleteFunc(m.pending, func(r frameRequest) bool {
		return r.id == id
	})
}

// Pending returns the number of outstanding frame requests.
func (m *ManualScheduler) Pending() int {
	return len(m.pending)
}

// Advance moves the clock forward by d and fires every request that was
// pending before the call. Requests made by the callbacks wait for the next
// Advance. It returns the number of callbacks fired.
func (m *ManualScheduler) Advance(d time.Duration) int {
	m.now = m.now.Add(d)

	batch := m.pending
	m.pending = nil
	for _, r := range batch {
		r.fn(m.now)
	}
	return len(batch)
}
