// Package pipeline provides the demand-driven breeding tree that produces
// each new generation's individuals.
//
// A tree is made of Sources. Leaves (selection methods, Initialization)
// produce individuals directly; composites pull from their children on
// demand according to one policy each. Nothing happens until the breeder
// asks the root for individuals with Produce, so every level only does the
// work its parent needs.
//
// # Contract
//
// Produce(minN, maxN, subpop, out, state, thread, misc) appends between minN
// and maxN individuals to out and returns how many it appended. Force and
// GenerationSwitch may round a request (see their docs); Initialization and
// Repeat saturate to one end of the range.
//
// # Policies
//
//   - Reproduction: identity, delegates the quota verbatim
//   - Buffered: refills a FIFO buffer in fixed-size batches
//   - Checking: retries a batch until it passes a predicate, then falls back
//   - FirstCopy: first individual of a generation from child 0, the rest from child 1
//   - Force: drives the child in fixed-size chunks
//   - GenerationSwitch: child 0 before a generation threshold, child 1 after
//   - Initialization: brand-new individuals from the species
//   - Multi: one weighted-random child per call
//   - Repeat: copies of one captured individual
//   - Stub: defers binding of a reusable fragment until FillStubs
//   - Unique: filters individuals already present in the subpopulation
//
// # Lifecycle
//
//	root.Setup(params, base)          // once, fatal on bad parameters
//	pipeline.Assemble(state, root)    // once, fills stubs and wires probabilities
//	root.PrepareToProduce(state, s, t) // once per generation per thread
//	root.Produce(...)                 // repeatedly
//	root.FinishProducing(state, s, t)
//
// A tree instance is owned by exactly one thread; build one per worker.
package pipeline
