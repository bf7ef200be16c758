package species

import "github.com/kbukum/breedkit/pipeline"

// OneMax counts the set bits of a bit vector.
func OneMax(b *BitVector) float64 {
	sum := 0
	for _, g := range b.Genes {
		sum += int(g)
	}
	return float64(sum)
}

// Evaluate assigns OneMax fitness to every unevaluated bit vector in inds
// and returns the best individual seen.
func Evaluate(inds []pipeline.Individual) *BitVector {
	var best *BitVector
	for _, ind := range inds {
		b, ok := ind.(*BitVector)
		if !ok {
			continue
		}
		if !b.Evaluated {
			b.SetFitness(OneMax(b))
		}
		if best == nil || b.Fitness() > best.Fitness() {
			best = b
		}
	}
	return best
}
