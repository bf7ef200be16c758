package species

import (
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/pipeline"
	"github.com/kbukum/breedkit/validation"
)

// BitVector is a fixed-length bit-string individual. Genes hold 0 or 1.
// Equality and hashing look only at the genes; ID changes on every copy.
type BitVector struct {
	ID        uuid.UUID
	Genes     []byte
	Evaluated bool
	fitness   float64
}

// NewBitVector wraps genes in a fresh, unevaluated individual.
func NewBitVector(genes []byte) *BitVector {
	return &BitVector{ID: uuid.New(), Genes: genes}
}

func (b *BitVector) Fitness() float64 { return b.fitness }

// SetFitness records an evaluation.
func (b *BitVector) SetFitness(f float64) {
	b.fitness = f
	b.Evaluated = true
}

func (b *BitVector) Duplicate() pipeline.Individual {
	return &BitVector{
		ID:        uuid.New(),
		Genes:     append([]byte(nil), b.Genes...),
		Evaluated: b.Evaluated,
		fitness:   b.fitness,
	}
}

func (b *BitVector) Equal(other pipeline.Individual) bool {
	o, ok := other.(*BitVector)
	if !ok || len(o.Genes) != len(b.Genes) {
		return false
	}
	for i := range b.Genes {
		if b.Genes[i] != o.Genes[i] {
			return false
		}
	}
	return true
}

func (b *BitVector) Hash() uint64 { return xxhash.Sum64(b.Genes) }

// String renders the genes as 0s and 1s.
func (b *BitVector) String() string {
	s := make([]byte, len(b.Genes))
	for i, g := range b.Genes {
		s[i] = '0' + g
	}
	return string(s)
}

type speciesParams struct {
	GenomeSize int `param:"genome-size" validate:"gte=1"`
}

// BitVectorSpecies creates uniformly random bit vectors.
type BitVectorSpecies struct {
	GenomeSize int
}

// NewBitVectorSpecies reads genome-size under base.
func NewBitVectorSpecies(params *config.Parameters, base config.Path) (*BitVectorSpecies, error) {
	n, err := params.RequireInt(base.Push("genome-size"), "")
	if err != nil {
		return nil, err
	}
	p := speciesParams{GenomeSize: n}
	if err := validation.Params(base, &p); err != nil {
		return nil, err
	}
	return &BitVectorSpecies{GenomeSize: p.GenomeSize}, nil
}

func (s *BitVectorSpecies) NewIndividual(state *pipeline.State, thread int) pipeline.Individual {
	r := state.Random[thread]
	genes := make([]byte, s.GenomeSize)
	for i := range genes {
		genes[i] = byte(r.IntN(2))
	}
	return NewBitVector(genes)
}
