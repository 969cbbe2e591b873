// Package domain holds the pure domain layer: shared types and the error
// taxonomy used across modules. It has no infrastructure dependencies.
package domain

import "errors"

// Error taxonomy for the simulation pipeline.
//
// Construction errors are detected eagerly, before any optimization work
// begins. Numeric errors are fatal to the current run and are never retried.
// Both propagate to the single external entry point unmodified; callers use
// errors.Is to branch on them.
var (
	// ErrConstruction indicates a malformed operator, ansatz, parameter
	// vector or threshold table.
	ErrConstruction = errors.New("construction error")

	// ErrNumeric indicates an evaluation produced a non-finite or otherwise
	// invalid scalar.
	ErrNumeric = errors.New("numeric error")
)
