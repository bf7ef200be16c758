// Package breeder fills the next generation by driving breeding trees in
// parallel.
//
// Each subpopulation of the new generation is split into one contiguous
// chunk per thread. Thread t owns its own tree for every subpopulation and
// the random stream State.Random[t], so threads share nothing while they
// run; the only synchronization point is the join at the end of Breed.
//
//	b, err := breeder.New(cfg, assembly.NewBuilder(nil, params), log)
//	state := b.State(generation, current)
//	next, err := b.Breed(ctx, state)
package breeder
