// Package species provides a bit-vector representation that plugs into the
// breeding pipeline: the BitVector individual, the species that creates
// random ones, the OneMax fitness function and a BitFlip mutation source.
package species
