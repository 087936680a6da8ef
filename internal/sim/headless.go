package sim

import "time"

// RunResult summarizes a headless run.
type RunResult struct {
	Frames   int
	Elapsed  time.Duration // Simulated time
	Stats    Stats
	TimedOut bool // Frame budget ran out before a winner emerged
}

// RunHeadless starts s and drives sched with a fixed step until the match
// ends or maxFrames frames have fired. s must have been created with sched
// as its scheduler. A maxFrames of zero or less means no limit.
func RunHeadless(s *Simulation, sched *ManualScheduler, step time.Duration, maxFrames int) RunResult {
	start := sched.Now()
	s.Start()

	frames := 0
	for s.State() == StateRunning {
		if maxFrames > 0 && frames >= maxFrames {
			break
		}
		if sched.Advance(step) == 0 {
			break
		}
		frames++
	}

	res := RunResult{
		Frames:  frames,
		Elapsed: sched.Now().Sub(start),
		Stats:   s.Stats(),
	}
	if s.State() == StateRunning {
		res.TimedOut = true
		s.Stop()
	}
	return res
}
