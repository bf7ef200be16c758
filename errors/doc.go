// Package errors provides the structured error type used across breedkit.
// Configuration problems found while assembling a breeding tree are fatal
// and carry a machine-readable code; production-time shortfalls are not
// errors and never reach this package.
package errors
