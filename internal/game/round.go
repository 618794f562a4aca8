package game

import (
	"math/rand"
	"sync"
)

// Target positions are kept away from the wheel edges so the full scoring
// fan (3.5 zone widths, 14 degrees, on each side) never extends past the
// valid range. 14 degrees is just under 8 positions on a 180-degree wheel,
// so a margin of 10 is sufficient.
const (
	MinTarget = 10
	MaxTarget = 90
)

// Round holds the generated parameters for a single guessing round.
type Round struct {
	Spectrum Spectrum
	Target   int
}

// Generator draws round parameters from a spectrum catalog. The random
// source is injected so round generation is deterministic under test.
// A Generator is safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	catalog []Spectrum
	rng     *rand.Rand
}

// NewGenerator creates a Generator over catalog using src for randomness.
func NewGenerator(catalog []Spectrum, src rand.Source) *Generator {
	return &Generator{
		catalog: catalog,
		rng:     rand.New(src),
	}
}

// NewRound draws a spectrum and a target position. Each draw is independent;
// repeated spectrums are allowed.
func (g *Generator) NewRound() Round {
	g.mu.Lock()
	defer g.mu.Unlock()

	return Round{
		Spectrum: g.catalog[g.rng.Intn(len(g.catalog))],
		Target:   MinTarget + g.rng.Intn(MaxTarget-MinTarget+1),
	}
}
