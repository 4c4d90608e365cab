package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Roll is the two faces of one throw.
type Roll struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Sum is what the token moves by.
func (r Roll) Sum() int { return r.A + r.B }

// Doubles reports whether both faces match.
func (r Roll) Doubles() bool { return r.A == r.B }

func (r Roll) String() string { return fmt.Sprintf("%d+%d", r.A, r.B) }

// Roller is anything that can throw a pair of dice.
type Roller interface {
	Roll() Roll
}

// Dice throws two six-sided dice from a seeded source. Same seed, same
// sequence of rolls.
type Dice struct {
	rng  *rand.Rand
	last Roll
}

func NewDice(seed int64) *Dice {
	return &Dice{rng: rand.New(rand.NewSource(seed))}
}

func (d *Dice) Roll() Roll {
	d.last = Roll{A: d.rng.Intn(6) + 1, B: d.rng.Intn(6) + 1}
	return d.last
}

// IsDoubles is about the most recent roll.
func (d *Dice) IsDoubles() bool {
	return d.last.Doubles()
}

// LoadedDice plays back a fixed list of rolls, starting over at the end.
type LoadedDice struct {
	Rolls []Roll
	next  int
}

func NewLoadedDice(rolls ...Roll) *LoadedDice {
	return &LoadedDice{Rolls: rolls}
}

func (d *LoadedDice) Roll() Roll {
	if len(d.Rolls) == 0 {
		return Roll{A: 1, B: 2}
	}
	r := d.Rolls[d.next%len(d.Rolls)]
	d.next++
	return r
}

// NewSeed makes a seed from crypto/rand, for when none is configured.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
