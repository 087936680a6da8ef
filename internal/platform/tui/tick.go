// Package tui provides the Bubble Tea integration for the arena.
// It handles the terminal UI loop, input mapping, and drives the simulation
// by granting frames on every tick.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rps-arena/internal/sim"
)

// TickMsg is sent to trigger a display frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// grantFrames moves the scheduler clock to t and fires the frames that were
// pending. Ticks that arrive out of order do not move the clock backwards.
func grantFrames(sched *sim.ManualScheduler, t time.Time) int {
	d := t.Sub(sched.Now())
	if d < 0 {
		d = 0
	}
	return sched.Advance(d)
}
