// Package generator produces pseudo-random integer sets with controlled
// density and clustering, for benchmarks and randomized tests.
package generator

import (
	"fmt"
	"math/rand/v2"

	"github.com/oisee/concise/pkg/concise"
)

// Distribution selects the shape of a generated set.
type Distribution string

const (
	// Uniform includes each element of the universe independently.
	Uniform Distribution = "uniform"
	// Clustered produces dense runs separated by long gaps, the shape
	// compressed encodings are best at.
	Clustered Distribution = "clustered"
	// Mixed draws each set as either Uniform or Clustered, chosen at random
	// per set; a single set does not combine the two shapes.
	Mixed Distribution = "mixed"
)

// Distributions lists the supported shapes.
var Distributions = []Distribution{Uniform, Clustered, Mixed}

// Generator builds sets from a deterministic PCG stream.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator seeded with the given value.
func New(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0xA5A5A5A5A5A5A5A5))}
}

// Set draws one set of the given shape over [0, universe) with the given
// expected density.
func (g *Generator) Set(dist Distribution, universe int, density float64) (*concise.Set, error) {
	switch dist {
	case Uniform:
		return g.uniform(universe, density), nil
	case Clustered:
		return g.clustered(universe, density), nil
	case Mixed:
		if g.rng.IntN(2) == 0 {
			return g.uniform(universe, density), nil
		}
		return g.clustered(universe, density), nil
	default:
		return nil, fmt.Errorf("generator: unknown distribution %q", dist)
	}
}

func (g *Generator) uniform(universe int, density float64) *concise.Set {
	s := concise.New()
	for e := 0; e < universe; e++ {
		if g.rng.Float64() < density {
			s.Add(e)
		}
	}
	return s
}

// clustered emits runs whose mean length grows with density, separated by
// gaps sized to hit the requested overall fill.
func (g *Generator) clustered(universe int, density float64) *concise.Set {
	s := concise.New()
	if density <= 0 {
		return s
	}
	meanRun := 1 + int(density*200)
	meanGap := int(float64(meanRun)*(1-density)/density) + 1
	e := g.gap(meanGap)
	for e < universe {
		runLen := 1 + g.rng.IntN(2*meanRun)
		end := min(e+runLen-1, universe-1)
		s.FillRange(e, end)
		e = end + 1 + g.gap(meanGap)
	}
	return s
}

func (g *Generator) gap(mean int) int {
	if mean <= 1 {
		return 1
	}
	return 1 + g.rng.IntN(2*mean)
}
