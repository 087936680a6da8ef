package sim

import (
	"testing"

	"github.com/vovakirdan/rps-arena/internal/core"
)

func kineticEnergy(es ...*Entity) float64 {
	sum := 0.0
	for _, e := range es {
		sum += e.Vel.LenSq()
	}
	return sum
}

func TestCollideTangencyIsNotContact(t *testing.T) {
	a := &Entity{Pos: core.V(100, 100), Kind: Rock, Radius: 19}
	b := &Entity{Pos: core.V(138, 100), Kind: Scissors, Radius: 19}

	if Overlapping(a, b) {
		t.Error("entities at exactly 2r should not overlap")
	}
	touched, converted := Collide(a, b)
	if touched || converted {
		t.Errorf("Collide() = %v, %v on tangent pair", touched, converted)
	}
	if b.Kind != Scissors {
		t.Error("tangent pair must not convert")
	}
}

func TestCollideHeadOn(t *testing.T) {
	a := &Entity{Pos: core.V(100, 100), Vel: core.V(60, 0), Kind: Rock, Radius: 19}
	b := &Entity{Pos: core.V(130, 100), Vel: core.V(-60, 0), Kind: Rock, Radius: 19}

	touched, converted := Collide(a, b)
	if !touched || converted {
		t.Fatalf("Collide() = %v, %v, expected true, false", touched, converted)
	}

	// Overlap of 8 split evenly
	if !near(a.Pos.X, 96) || !near(b.Pos.X, 134) {
		t.Errorf("positions = %f, %f, expected 96, 134", a.Pos.X, b.Pos.X)
	}
	if !near(a.Vel.X, -60) || !near(b.Vel.X, 60) || !near(a.Vel.Y, 0) || !near(b.Vel.Y, 0) {
		t.Errorf("velocities = %+v, %+v, expected swapped", a.Vel, b.Vel)
	}
}

func TestCollideObliqueConservesEnergy(t *testing.T) {
	a := &Entity{Pos: core.V(100, 100), Vel: core.V(50, 33.1662479), Kind: Paper, Radius: 19}
	b := &Entity{Pos: core.V(120, 115), Vel: core.V(-10, 59.1607978), Kind: Paper, Radius: 19}
	before := kineticEnergy(a, b)
	beforeTangent := [2]float64{}
	n, _ := b.Pos.Sub(a.Pos).Normalize()
	tn := n.Perp()
	beforeTangent[0], beforeTangent[1] = a.Vel.Dot(tn), b.Vel.Dot(tn)

	if touched, _ := Collide(a, b); !touched {
		t.Fatal("expected contact")
	}

	if after := kineticEnergy(a, b); !near(after, before) {
		t.Errorf("kinetic energy %f -> %f", before, after)
	}
	if d := b.Pos.Sub(a.Pos).Len(); !near(d, 38) {
		t.Errorf("distance after separation = %f, expected 38", d)
	}
	if !near(a.Vel.Dot(tn), beforeTangent[0]) || !near(b.Vel.Dot(tn), beforeTangent[1]) {
		t.Error("tangential components changed")
	}
}

func TestCollideTangentialMotionUnchanged(t *testing.T) {
	a := &Entity{Pos: core.V(0, 0), Vel: core.V(0, 60), Kind: Rock, Radius: 19}
	b := &Entity{Pos: core.V(30, 0), Vel: core.V(0, -60), Kind: Rock, Radius: 19}

	Collide(a, b)

	if !near(a.Vel.X, 0) || !near(a.Vel.Y, 60) || !near(b.Vel.X, 0) || !near(b.Vel.Y, -60) {
		t.Errorf("velocities = %+v, %+v, expected unchanged", a.Vel, b.Vel)
	}
}

func TestCollideCoincidentCenters(t *testing.T) {
	a := &Entity{Pos: core.V(50, 50), Vel: core.V(60, 0), Kind: Rock, Radius: 19}
	b := &Entity{Pos: core.V(50, 50), Vel: core.V(0, 60), Kind: Scissors, Radius: 19}

	touched, converted := Collide(a, b)
	if !touched || !converted {
		t.Fatalf("Collide() = %v, %v, expected true, true", touched, converted)
	}
	if a.Pos != core.V(50, 50) || b.Pos != core.V(50, 50) {
		t.Error("coincident entities should not be separated")
	}
	if a.Vel != core.V(60, 0) || b.Vel != core.V(0, 60) {
		t.Error("coincident entities should keep their velocities")
	}
	if b.Kind != Rock {
		t.Errorf("scissors should become rock, got %s", b.Kind)
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		a, b         Kind
		wantA, wantB Kind
		converted    bool
	}{
		{Rock, Scissors, Rock, Rock, true},
		{Scissors, Rock, Rock, Rock, true},
		{Scissors, Paper, Scissors, Scissors, true},
		{Paper, Scissors, Scissors, Scissors, true},
		{Paper, Rock, Paper, Paper, true},
		{Rock, Paper, Paper, Paper, true},
		{Rock, Rock, Rock, Rock, false},
		{Paper, Paper, Paper, Paper, false},
		{Scissors, Scissors, Scissors, Scissors, false},
		{None, Rock, None, Rock, false},
	}
	for _, tc := range tests {
		a, b := &Entity{Kind: tc.a}, &Entity{Kind: tc.b}
		got := Convert(a, b)
		if got != tc.converted || a.Kind != tc.wantA || b.Kind != tc.wantB {
			t.Errorf("Convert(%s, %s) = %v -> (%s, %s), expected %v -> (%s, %s)",
				tc.a, tc.b, got, a.Kind, b.Kind, tc.converted, tc.wantA, tc.wantB)
		}
	}
}
