package domain

import "time"

// EnergyResult is the outcome of one optimization run. It is produced exactly
// once, at the end of optimization, and is immutable thereafter.
type EnergyResult struct {
	// Value is the estimated ground-state energy. For the SPSA strategy this
	// is the best energy seen over the whole run, not the last iterate.
	Value float64

	// Params are the ansatz parameters that produced Value.
	Params []float64

	// IterationsUsed counts optimizer iterations actually performed.
	IterationsUsed int

	// Converged is true only when the deterministic strategy reached its
	// tolerance before the iteration cap. SPSA never converges early.
	Converged bool

	// Trace holds the best energy known after each iteration. Used for
	// persistence and trace statistics; may be nil when not tracked.
	Trace []float64
}

// SimulationRequest describes one full simulation: the operator literals, the
// ansatz family, the optimizer configuration and the verdict thresholds. The
// external collaborator (CLI or HTTP layer) supplies these; the core never
// reads configuration itself.
type SimulationRequest struct {
	PauliTerms    []string
	Coefficients  []float64
	NumQubits     int
	Rotation      string
	Entanglement  string
	Repetitions   int
	Strategy      string
	MaxIterations int
	Seed          int64
	Thresholds    []AffinityThreshold
}

// AffinityThreshold maps an upper energy bound to a verdict label. Bounds are
// compared strictly: an energy classifies under the first threshold whose
// bound it is strictly less than.
type AffinityThreshold struct {
	Bound float64
	Label string
}

// SimulationResult bundles the optimization outcome with its interpretation.
type SimulationResult struct {
	Energy      EnergyResult
	Verdict     string
	EnergyBound float64
	Duration    time.Duration
}
