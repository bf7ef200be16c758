// Package selection provides the leaf sources that hand out existing members
// of a subpopulation: Tournament, Random and Best.
//
// Selection methods return the population's own individuals. Composite
// sources that keep what they receive duplicate it first (see
// pipeline.Selector).
package selection
