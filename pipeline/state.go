package pipeline

import (
	"math/rand/v2"

	"github.com/kbukum/breedkit/logger"
)

// Individual is one candidate solution. The pipeline only needs to copy
// individuals and compare them by value.
type Individual interface {
	// Fitness is higher-is-better.
	Fitness() float64
	// Duplicate returns an independent deep copy.
	Duplicate() Individual
	// Equal reports value equality of the genomes.
	Equal(other Individual) bool
	// Hash must agree with Equal.
	Hash() uint64
}

// Species creates brand-new individuals for a subpopulation.
type Species interface {
	NewIndividual(state *State, thread int) Individual
}

// Subpopulation is one independently bred pool.
type Subpopulation struct {
	Individuals []Individual
	Species     Species
}

// Population is the set of subpopulations of one generation.
type Population struct {
	Subpops []*Subpopulation
}

// State is the read-only view of a run that every Produce call receives.
// A State is built once per generation and never mutated while breeding,
// so Generation is a value rather than a shared counter.
type State struct {
	// Generation is the index of the generation being read from.
	Generation int
	// Population is the current generation. Breeding never writes to it.
	Population *Population
	// Random holds one stream per thread; thread t only touches Random[t].
	Random []*rand.Rand
	// Log may be nil.
	Log *logger.Logger
}

// NewRandom creates one independent stream per thread from a run seed.
func NewRandom(seed uint64, threads int) []*rand.Rand {
	streams := make([]*rand.Rand, threads)
	for t := range streams {
		streams[t] = rand.New(rand.NewPCG(seed, uint64(t)+1))
	}
	return streams
}

// Subpop returns the subpopulation at index i.
func (s *State) Subpop(i int) *Subpopulation {
	return s.Population.Subpops[i]
}
