// Package assembly builds breeding trees from hierarchical parameters.
//
// A tree is described under a base path:
//
//	<base>.type            registered type name, or "stub" / "same" for a child
//	<base>.prob            weight used by a parent that picks among children
//	<base>.num-sources     child count for types with a dynamic count
//	<base>.source.<i>      child i
//	<base>.stub            stub subtree of a "stub" source
//
// A child of type "stub" is left as an unfilled slot for pipeline.Assemble
// to bind; "same" reuses the previous sibling's instance. Keys missing under
// a base fall back to the type's default base, so shared settings can live
// under for example breed.force.num-inds.
//
// Build returns a fresh, set-up tree on every call. Breeding threads each
// build their own.
package assembly
