// Package vqe drives the variational search for the operator's minimum
// eigenvalue. Two interchangeable strategies exist: a deterministic
// quasi-Newton search and a simultaneous-perturbation stochastic search.
package vqe

import (
	"fmt"

	"github.com/aristath/qbind/internal/domain"
	"github.com/aristath/qbind/internal/modules/ansatz"
	"github.com/aristath/qbind/internal/modules/hamiltonian"
	"github.com/rs/zerolog"
)

// Strategy is a closed tag selecting the optimization behavior.
type Strategy string

const (
	// StrategyDeterministic is a gradient-based quasi-Newton search. It may
	// terminate early once its tolerance is met.
	StrategyDeterministic Strategy = "deterministic"

	// StrategySPSA is a simultaneous-perturbation stochastic search. It
	// always runs the full iteration budget and keeps the best energy seen.
	StrategySPSA Strategy = "spsa"
)

// ParseStrategy maps a string literal to a Strategy tag.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyDeterministic, StrategySPSA:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("%w: unknown optimizer strategy %q", domain.ErrConstruction, s)
}

// Config holds optimizer settings. Zero-valued tunables fall back to
// defaults; MaxIterations must be positive.
type Config struct {
	Strategy      Strategy
	MaxIterations int

	// Tolerance is the deterministic strategy's convergence tolerance on the
	// gradient norm. Ignored by SPSA.
	Tolerance float64

	// Seed is the SPSA strategy's private random seed. Ignored by the
	// deterministic strategy.
	Seed int64

	// LearningRate is SPSA's initial step-size gain (a).
	LearningRate float64

	// PerturbationSize is SPSA's initial perturbation magnitude (c).
	PerturbationSize float64
}

const (
	defaultTolerance        = 1e-8
	defaultLearningRate     = 0.2
	defaultPerturbationSize = 0.1
)

// Optimizer minimizes the expectation energy over the ansatz parameter space.
type Optimizer struct {
	evaluator Evaluator
	log       zerolog.Logger
}

// New creates a new optimizer over the given evaluator.
func New(evaluator Evaluator, log zerolog.Logger) *Optimizer {
	return &Optimizer{
		evaluator: evaluator,
		log:       log.With().Str("component", "optimizer").Logger(),
	}
}

// Minimize searches the parameter space for the minimum expectation energy,
// starting from the all-zero parameter vector. Any evaluator error aborts the
// run and propagates unmodified.
func (o *Optimizer) Minimize(op *hamiltonian.Operator, spec *ansatz.Spec, cfg Config) (domain.EnergyResult, error) {
	if cfg.MaxIterations <= 0 {
		return domain.EnergyResult{}, fmt.Errorf("%w: max iterations must be positive, got %d",
			domain.ErrConstruction, cfg.MaxIterations)
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = defaultTolerance
	}
	if cfg.LearningRate == 0 {
		cfg.LearningRate = defaultLearningRate
	}
	if cfg.PerturbationSize == 0 {
		cfg.PerturbationSize = defaultPerturbationSize
	}

	initial := make([]float64, spec.ParameterCount())

	switch cfg.Strategy {
	case StrategyDeterministic:
		return o.minimizeDeterministic(op, spec, cfg, initial)
	case StrategySPSA:
		return o.minimizeSPSA(op, spec, cfg, initial)
	default:
		return domain.EnergyResult{}, fmt.Errorf("%w: unknown optimizer strategy %q",
			domain.ErrConstruction, cfg.Strategy)
	}
}
