// Package estimation computes expectation values of Pauli-sum operators on
// ansatz-generated states, using a dense statevector simulation.
package estimation

import (
	"fmt"
	"math"

	"github.com/aristath/qbind/internal/domain"
	"github.com/aristath/qbind/internal/modules/ansatz"
	"github.com/aristath/qbind/internal/modules/hamiltonian"
	"github.com/rs/zerolog"
)

// imagTolerance bounds the acceptable imaginary residue of an expectation
// value, relative to the operator's energy bound. A Hermitian operator on a
// normalized state yields a real expectation up to floating-point rounding;
// anything beyond that indicates a broken simulation.
const imagTolerance = 1e-9

// Estimator evaluates the expectation energy of an operator on the state an
// ansatz produces for a given parameter vector. It is stateless apart from
// its logger and safe for concurrent use.
type Estimator struct {
	log zerolog.Logger
}

// NewEstimator creates a new estimator.
func NewEstimator(log zerolog.Logger) *Estimator {
	return &Estimator{
		log: log.With().Str("component", "estimator").Logger(),
	}
}

// Evaluate builds |ψ(θ)> from the ansatz and returns Σ cᵢ·<ψ|Pᵢ|ψ>.
// The parameter vector is never mutated.
func (e *Estimator) Evaluate(op *hamiltonian.Operator, spec *ansatz.Spec, params []float64) (float64, error) {
	if op.NumQubits() != spec.NumQubits() {
		return 0, fmt.Errorf("%w: operator has %d qubits, ansatz has %d",
			domain.ErrConstruction, op.NumQubits(), spec.NumQubits())
	}
	if len(params) != spec.ParameterCount() {
		return 0, fmt.Errorf("%w: got %d parameters, ansatz needs %d",
			domain.ErrConstruction, len(params), spec.ParameterCount())
	}

	state := prepareState(spec, params)

	var energy float64
	bound := op.EnergyBound()
	for _, term := range op.Terms() {
		expect, err := e.expectation(state, term.Pauli, bound)
		if err != nil {
			return 0, err
		}
		energy += term.Coefficient * expect
	}

	if math.IsNaN(energy) || math.IsInf(energy, 0) {
		return 0, fmt.Errorf("%w: expectation energy is not finite", domain.ErrNumeric)
	}

	return energy, nil
}

// prepareState applies the ansatz circuit to |0...0>.
func prepareState(spec *ansatz.Spec, params []float64) *statevector {
	n := spec.NumQubits()
	state := newStatevector(n)

	next := 0
	rotationLayer := func() {
		for q := 0; q < n; q++ {
			theta := params[next]
			next++
			switch spec.Rotation() {
			case ansatz.RotationRY:
				state.applyRY(q, theta)
			case ansatz.RotationRX:
				state.applyRX(q, theta)
			case ansatz.RotationRZ:
				state.applyRZ(q, theta)
			}
		}
	}

	for rep := 0; rep < spec.Repetitions(); rep++ {
		rotationLayer()
		for q := 0; q < n-1; q++ {
			switch spec.Entanglement() {
			case ansatz.EntanglementCX:
				state.applyCX(q, q+1)
			case ansatz.EntanglementCZ:
				state.applyCZ(q, q+1)
			}
		}
	}
	rotationLayer()

	return state
}

// expectation returns Re<ψ|P|ψ> for one Pauli string, verifying the
// imaginary residue is negligible before discarding it.
func (e *Estimator) expectation(state *statevector, pauli string, bound float64) (float64, error) {
	applied := state.clone()
	n := state.numQubits

	// Little-endian convention: leftmost character acts on the highest qubit.
	for k, c := range pauli {
		q := n - 1 - k
		switch c {
		case 'I':
		case 'X':
			applied.applyX(q)
		case 'Y':
			applied.applyY(q)
		case 'Z':
			applied.applyZ(q)
		}
	}

	value := state.innerProduct(applied)

	tol := imagTolerance
	if bound > 1 {
		tol *= bound
	}
	if math.Abs(imag(value)) > tol {
		e.log.Error().
			Str("pauli", pauli).
			Float64("imaginary", imag(value)).
			Msg("Expectation value has non-negligible imaginary component")
		return 0, fmt.Errorf("%w: expectation of %q has imaginary component %g",
			domain.ErrNumeric, pauli, imag(value))
	}

	return real(value), nil
}
