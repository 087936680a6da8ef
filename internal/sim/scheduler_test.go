package sim

import (
	"testing"
	"time"
)

func TestManualSchedulerAdvance(t *testing.T) {
	start := time.Unix(100, 0)
	m := NewManualScheduler(start)

	var got []time.Time
	m.RequestFrame(func(now time.Time) { got = append(got, now) })
	m.RequestFrame(func(now time.Time) { got = append(got, now) })

	if n := m.Advance(time.Second); n != 2 {
		t.Errorf("Advance() fired %d, expected 2", n)
	}
	want := start.Add(time.Second)
	if len(got) != 2 || !got[0].Equal(want) || !got[1].Equal(want) {
		t.Errorf("callbacks saw %v, expected two calls at %v", got, want)
	}
	if !m.Now().Equal(want) {
		t.Errorf("Now() = %v, expected %v", m.Now(), want)
	}
	if m.Advance(time.Second) != 0 {
		t.Error("requests are one-shot")
	}
}

func TestManualSchedulerCancel(t *testing.T) {
	m := NewManualScheduler(time.Time{})
	fired := false
	id := m.RequestFrame(func(time.Time) { fired = true })
	if id == 0 {
		t.Fatal("frame id must be nonzero")
	}

	m.CancelFrame(id)
	m.CancelFrame(id)
	m.CancelFrame(12345)

	if m.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", m.Pending())
	}
	m.Advance(time.Millisecond)
	if fired {
		t.Error("cancelled frame fired")
	}
}

func TestManualSchedulerDefersNestedRequests(t *testing.T) {
	m := NewManualScheduler(time.Time{})
	calls := 0
	var loop FrameFunc
	loop = func(time.Time) {
		calls++
		m.RequestFrame(loop)
	}
	m.RequestFrame(loop)

	m.Advance(time.Millisecond)
	if calls != 1 || m.Pending() != 1 {
		t.Errorf("calls = %d, pending = %d, expected 1 and 1", calls, m.Pending())
	}
	m.Advance(time.Millisecond)
	if calls != 2 {
		t.Errorf("calls = %d, expected 2", calls)
	}
}
