package engine

import (
	"errors"
	"sync"

	"github.com/mcoot/blockdrop/internal/dependencies/random"
)

// Generator names accepted by NewGenerator
const (
	GeneratorUniform = "uniform"
	GeneratorBag     = "bag"
)

// ErrUnknownGenerator is returned for an unrecognised generator name
var ErrUnknownGenerator = errors.New("unknown piece generator")

// Generator produces the next piece kind
type Generator interface {
	Next() Kind
}

// UniformGenerator draws every kind independently with equal probability.
// Repeats are allowed.
type UniformGenerator struct {
	random random.Random
}

// NewUniformGenerator creates a UniformGenerator
func NewUniformGenerator(rnd random.Random) *UniformGenerator {
	return &UniformGenerator{random: rnd}
}

// Next returns a uniformly drawn kind
func (g *UniformGenerator) Next() Kind {
	return Kinds[g.random.Intn(len(Kinds))]
}

// BagGenerator deals all seven kinds in a shuffled order before reshuffling
type BagGenerator struct {
	random random.Random

	mu  sync.Mutex
	bag []Kind
}

// NewBagGenerator creates a BagGenerator
func NewBagGenerator(rnd random.Random) *BagGenerator {
	return &BagGenerator{random: rnd}
}

// Next returns the next kind from the bag, refilling it when empty
func (g *BagGenerator) Next() Kind {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.bag) == 0 {
		g.refill()
	}
	k := g.bag[0]
	g.bag = g.bag[1:]
	return k
}

// refill shuffles a fresh bag (Fisher-Yates)
func (g *BagGenerator) refill() {
	g.bag = make([]Kind, len(Kinds))
	copy(g.bag, Kinds)
	for i := len(g.bag) - 1; i > 0; i-- {
		j := g.random.Intn(i + 1)
		g.bag[i], g.bag[j] = g.bag[j], g.bag[i]
	}
}

// NewGenerator resolves a generator by name; empty means uniform
func NewGenerator(name string, rnd random.Random) (Generator, error) {
	switch name {
	case "", GeneratorUniform:
		return NewUniformGenerator(rnd), nil
	case GeneratorBag:
		return NewBagGenerator(rnd), nil
	default:
		return nil, ErrUnknownGenerator
	}
}
