// Package sim implements the rock-paper-scissors arena: entity kinematics,
// pairwise elastic collisions, cyclic conversion and win detection.
//
// The package never draws and never schedules on its own. A host drives it
// through a FrameScheduler and reads it back through Snapshot.
package sim

import (
	"fmt"
	"strings"
)

// Kind is the cyclic type of an entity.
type Kind uint8

const (
	None Kind = iota // No kind; used for "no winner"
	Rock
	Paper
	Scissors
)

// Kinds lists the playable kinds in spawn order.
var Kinds = [...]Kind{Rock, Paper, Scissors}

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return "none"
	}
}

// ParseKind parses a kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rock", "r":
		return Rock, nil
	case "paper", "p":
		return Paper, nil
	case "scissors", "s":
		return Scissors, nil
	case "none", "":
		return None, nil
	}
	return None, fmt.Errorf("sim: unknown kind %q", s)
}

// Beats reports whether k converts other on contact.
// Rock beats Scissors, Scissors beats Paper, Paper beats Rock.
func (k Kind) Beats(other Kind) bool {
	switch k {
	case Rock:
		return other == Scissors
	case Scissors:
		return other == Paper
	case Paper:
		return other == Rock
	}
	return false
}

// Counts holds the number of entities of each kind.
// It doubles as the starting population passed to Init.
type Counts struct {
	Rock     int
	Paper    int
	Scissors int
}

// Of returns the count for kind k.
func (c Counts) Of(k Kind) int {
	switch k {
	case Rock:
		return c.Rock
	case Paper:
		return c.Paper
	case Scissors:
		return c.Scissors
	}
	return 0
}

func (c *Counts) add(k Kind) {
	switch k {
	case Rock:
		c.Rock++
	case Paper:
		c.Paper++
	case Scissors:
		c.Scissors++
	}
}

// Total returns the population size.
func (c Counts) Total() int {
	return c.Rock + c.Paper + c.Scissors
}

// Active returns how many kinds have at least one entity.
func (c Counts) Active() int {
	n := 0
	for _, k := range Kinds {
		if c.Of(k) > 0 {
			n++
		}
	}
	return n
}

// Sole returns the only kind with a nonzero count, or None when zero or
// several kinds are present.
func (c Counts) Sole() Kind {
	if c.Active() != 1 {
		return None
	}
	for _, k := range Kinds {
		if c.Of(k) > 0 {
			return k
		}
	}
	return None
}

// normalized returns c with negative counts treated as zero.
func (c Counts) normalized() Counts {
	return Counts{
		Rock:     max(0, c.Rock),
		Paper:    max(0, c.Paper),
		Scissors: max(0, c.Scissors),
	}
}

// String formats counts as "rock=1 paper=2 scissors=3".
func (c Counts) String() string {
	return fmt.Sprintf("rock=%d paper=%d scissors=%d", c.Rock, c.Paper, c.Scissors)
}

// Stats is the aggregate published to the stats collaborator.
// Winner is None while the outcome is open.
type Stats struct {
	Counts
	Winner Kind
}
