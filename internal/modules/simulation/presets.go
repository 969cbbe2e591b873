package simulation

import (
	"math"

	"github.com/aristath/qbind/internal/domain"
)

// Mpro binding-pocket model: a 4-qubit Hamiltonian whose coefficients stand
// in for the chemical forces in the protease active site. Terms are, in
// order: individual orbital energies, pairwise interaction energies, and
// tunneling/overlap effects.
var (
	mproPaulis = []string{
		"IIII", "ZIII", "IZII", "IIZI", "IIIZ",
		"ZZII", "ZIZI", "ZIIZ", "IZZI", "IZIZ", "IIZZ",
		"XXXX", "YYYY",
	}
	mproCoeffs = []float64{
		-2.1, 0.5, 0.4, 0.5, 0.4,
		-0.1, -0.05, -0.05, -0.1, -0.05, -0.1,
		0.05, 0.05,
	}
)

// DefaultThresholds is the hand-chosen verdict table. The bounds are not
// physically derived; comparisons are strict, so an energy of exactly -2.5
// classifies as moderate.
func DefaultThresholds() []domain.AffinityThreshold {
	return []domain.AffinityThreshold{
		{Bound: -3.0, Label: "extreme"},
		{Bound: -2.5, Label: "high"},
		{Bound: math.Inf(1), Label: "moderate"},
	}
}

// MproPreset is the deterministic configuration: a depth-2 RY/CX ansatz
// minimized by the gradient-based strategy.
func MproPreset() domain.SimulationRequest {
	return domain.SimulationRequest{
		PauliTerms:    append([]string(nil), mproPaulis...),
		Coefficients:  append([]float64(nil), mproCoeffs...),
		NumQubits:     4,
		Rotation:      "ry",
		Entanglement:  "cx",
		Repetitions:   2,
		Strategy:      "deterministic",
		MaxIterations: 100,
		Thresholds:    DefaultThresholds(),
	}
}

// MproSPSAPreset is the stochastic configuration: a deeper depth-3 ansatz
// with a larger iteration budget, suited to SPSA's noisy gradient estimates.
func MproSPSAPreset() domain.SimulationRequest {
	return domain.SimulationRequest{
		PauliTerms:    append([]string(nil), mproPaulis...),
		Coefficients:  append([]float64(nil), mproCoeffs...),
		NumQubits:     4,
		Rotation:      "ry",
		Entanglement:  "cx",
		Repetitions:   3,
		Strategy:      "spsa",
		MaxIterations: 200,
		Seed:          1,
		Thresholds:    DefaultThresholds(),
	}
}
