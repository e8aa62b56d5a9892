package game

import "math/rand"

// Dice supplies combat die rolls. The resolver takes it as an injected
// collaborator so encounters are reproducible under test.
type Dice interface {
	// Roll returns a uniform value in [1, sides].
	Roll(sides int) int
}

type randDice struct {
	rng *rand.Rand
}

// NewDice returns a seeded pseudo-random die-roll source.
func NewDice(seed int64) Dice {
	return &randDice{rng: rand.New(rand.NewSource(seed))}
}

func (d *randDice) Roll(sides int) int {
	return d.rng.Intn(sides) + 1
}

// ScriptedDice replays a fixed roll sequence, wrapping around when
// exhausted. Used by deterministic combat tests.
type ScriptedDice struct {
	Rolls []int
	pos   int
}

func (d *ScriptedDice) Roll(sides int) int {
	if len(d.Rolls) == 0 {
		return 1
	}
	r := d.Rolls[d.pos%len(d.Rolls)]
	d.pos++
	if r > sides {
		return sides
	}
	return r
}
