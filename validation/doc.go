// Package validation checks decoded parameter structs against their
// `validate` struct tags.
//
// Field names in errors come from the `param` tag so that a failure points
// at the exact parameter key that needs fixing.
//
//	type forceParams struct {
//	    NumInds int `param:"num-inds" validate:"gte=1"`
//	}
//	err := validation.Params(base, forceParams{NumInds: n})
package validation
