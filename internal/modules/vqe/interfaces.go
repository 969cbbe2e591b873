package vqe

import (
	"github.com/aristath/qbind/internal/modules/ansatz"
	"github.com/aristath/qbind/internal/modules/hamiltonian"
)

// Evaluator computes the expectation energy of an operator on the ansatz
// state for a parameter vector. Implemented by estimation.Estimator; tests
// substitute stubs.
type Evaluator interface {
	Evaluate(op *hamiltonian.Operator, spec *ansatz.Spec, params []float64) (float64, error)
}
