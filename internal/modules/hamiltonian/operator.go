// Package hamiltonian builds the Hermitian operator whose minimum eigenvalue
// the pipeline estimates. An operator is an immutable weighted sum of Pauli
// strings ("IIZX", ...), one character per qubit.
package hamiltonian

import (
	"fmt"
	"math"

	"github.com/aristath/qbind/internal/domain"
	"gonum.org/v1/gonum/floats"
)

// Term is one weighted Pauli string.
type Term struct {
	Pauli       string
	Coefficient float64
}

// Operator is a validated, immutable weighted sum of Pauli strings.
// All strings share one length, which fixes the qubit count for the whole
// computation.
//
// Pauli strings are little-endian: character k (counting from the left) acts
// on qubit numQubits-1-k. This matches the convention of the binding-pocket
// literals the presets carry.
type Operator struct {
	terms     []Term
	numQubits int
}

// New validates the term and coefficient lists and builds an Operator.
func New(paulis []string, coeffs []float64) (*Operator, error) {
	if len(paulis) == 0 {
		return nil, fmt.Errorf("%w: operator needs at least one term", domain.ErrConstruction)
	}
	if len(paulis) != len(coeffs) {
		return nil, fmt.Errorf("%w: %d terms but %d coefficients", domain.ErrConstruction, len(paulis), len(coeffs))
	}

	n := len(paulis[0])
	if n == 0 {
		return nil, fmt.Errorf("%w: empty Pauli string", domain.ErrConstruction)
	}

	terms := make([]Term, 0, len(paulis))
	for i, p := range paulis {
		if len(p) != n {
			return nil, fmt.Errorf("%w: term %q has length %d, expected %d", domain.ErrConstruction, p, len(p), n)
		}
		for _, c := range p {
			switch c {
			case 'I', 'X', 'Y', 'Z':
			default:
				return nil, fmt.Errorf("%w: term %q contains invalid Pauli %q", domain.ErrConstruction, p, string(c))
			}
		}
		if math.IsNaN(coeffs[i]) || math.IsInf(coeffs[i], 0) {
			return nil, fmt.Errorf("%w: coefficient %d is not finite", domain.ErrConstruction, i)
		}
		terms = append(terms, Term{Pauli: p, Coefficient: coeffs[i]})
	}

	return &Operator{terms: terms, numQubits: n}, nil
}

// NumQubits returns the qubit count fixed at construction.
func (o *Operator) NumQubits() int {
	return o.numQubits
}

// Terms returns a copy of the weighted terms.
func (o *Operator) Terms() []Term {
	out := make([]Term, len(o.terms))
	copy(out, o.terms)
	return out
}

// EnergyBound returns the sum of absolute coefficients. Every expectation
// value of the operator lies in [-EnergyBound, +EnergyBound], which bounds
// any eigenvalue estimate a run can legitimately produce.
func (o *Operator) EnergyBound() float64 {
	abs := make([]float64, len(o.terms))
	for i, t := range o.terms {
		abs[i] = math.Abs(t.Coefficient)
	}
	return floats.Sum(abs)
}
