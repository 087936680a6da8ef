package sim

import "math"

// EntityView is the read-only render view of one entity.
type EntityView struct {
	X, Y   float64
	Radius float64
	Kind   Kind
}

// Snapshot is a copy of the simulation state handed to renderers.
// It shares no memory with the simulation.
type Snapshot struct {
	Tick     uint64
	Width    float64
	Height   float64
	State    State
	Counts   Counts
	Winner   Kind
	Entities []EntityView
}

// Snapshot returns the current state as a Snapshot.
func (s *Simulation) Snapshot() Snapshot {
	b := s.Bounds()
	views := make([]EntityView, len(s.entities))
	for i, e := range s.entities {
		views[i] = EntityView{X: e.Pos.X, Y: e.Pos.Y, Radius: e.Radius, Kind: e.Kind}
	}
	return Snapshot{
		Tick:     s.tick,
		Width:    b.Width,
		Height:   b.Height,
		State:    s.state,
		Counts:   s.count(),
		Winner:   s.winner,
		Entities: views,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.State)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Winner)        //#nosec G115 -- hash computation
	h = h*31 + uint64(len(snap.Entities)) //#nosec G115 -- hash computation
	for _, e := range snap.Entities {
		h = h*31 + math.Float64bits(e.X)
		h = h*31 + math.Float64bits(e.Y)
		h = h*31 + uint64(e.Kind)
	}
	return h
}
