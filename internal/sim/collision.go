package sim

import "github.com/vovakirdan/rps-arena/internal/core"

// Overlapping reports whether a and b are strictly closer than the sum of
// their radii. Exact tangency does not count as contact.
func Overlapping(a, b *Entity) bool {
	d := b.Pos.Sub(a.Pos)
	r := a.Radius + b.Radius
	return d.LenSq() < r*r
}

// Collide resolves contact between a and b.
// It reports whether the pair touched and whether one of them converted.
//
// A touching pair is pushed apart by half the overlap each along the line of
// centers, then trades velocity components along that line. Tangential
// components are kept, so each pair conserves kinetic energy. When the
// centers coincide there is no contact normal: separation and exchange are
// skipped but the conversion rule still applies.
func Collide(a, b *Entity) (touched, converted bool) {
	delta := b.Pos.Sub(a.Pos)
	minDist := a.Radius + b.Radius
	dist := delta.Len()
	if dist >= minDist {
		return false, false
	}

	if n, ok := delta.Normalize(); ok {
		separate(a, b, n, minDist-dist)
		exchange(a, b, n)
	}

	return true, Convert(a, b)
}

// separate moves a and b apart along unit normal n by half the overlap each.
func separate(a, b *Entity, n core.Vec2, overlap float64) {
	push := n.Scale(overlap / 2)
	a.Pos = a.Pos.Sub(push)
	b.Pos = b.Pos.Add(push)
}

// exchange swaps the normal velocity components of a and b.
func exchange(a, b *Entity, n core.Vec2) {
	t := n.Perp()

	an, at := a.Vel.Dot(n), a.Vel.Dot(t)
	bn, bt := b.Vel.Dot(n), b.Vel.Dot(t)

	a.Vel = n.Scale(bn).Add(t.Scale(at))
	b.Vel = n.Scale(an).Add(t.Scale(bt))
}

// Convert applies cyclic dominance to a touching pair: the loser takes the
// winner's kind. It reports whether a conversion happened.
func Convert(a, b *Entity) bool {
	switch {
	case a.Kind == b.Kind:
		return false
	case a.Kind.Beats(b.Kind):
		b.Kind = a.Kind
	case b.Kind.Beats(a.Kind):
		a.Kind = b.Kind
	default:
		return false
	}
	return true
}
