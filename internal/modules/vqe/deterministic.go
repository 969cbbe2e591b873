package vqe

import (
	"fmt"
	"math"

	"github.com/aristath/qbind/internal/domain"
	"github.com/aristath/qbind/internal/modules/ansatz"
	"github.com/aristath/qbind/internal/modules/hamiltonian"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// minimizeDeterministic runs a quasi-Newton search (BFGS with a numeric
// gradient, Nelder-Mead fallback). Converged is true only when the solver
// reaches its tolerance before the iteration cap.
func (o *Optimizer) minimizeDeterministic(op *hamiltonian.Operator, spec *ansatz.Spec, cfg Config, initial []float64) (domain.EnergyResult, error) {
	// optimize.Problem.Func cannot return an error, so the first evaluator
	// failure is captured here and the objective degrades to NaN, which
	// stalls the solver until Minimize returns. Each evaluation also feeds
	// the best-seen trace reported back to callers.
	var evalErr error
	best := math.Inf(1)
	var trace []float64
	objective := func(x []float64) float64 {
		if evalErr != nil {
			return math.NaN()
		}
		energy, err := o.evaluator.Evaluate(op, spec, x)
		if err != nil {
			evalErr = err
			return math.NaN()
		}
		if energy < best {
			best = energy
		}
		trace = append(trace, best)
		return energy
	}

	problem := optimize.Problem{
		Func: objective,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, objective, x, nil)
		},
	}

	settings := &optimize.Settings{
		MajorIterations:   cfg.MaxIterations,
		GradientThreshold: cfg.Tolerance,
	}

	result, err := optimize.Minimize(problem, initial, settings, &optimize.BFGS{})
	if err != nil && evalErr == nil {
		o.log.Debug().Err(err).Msg("BFGS failed, falling back to Nelder-Mead")
		result, err = optimize.Minimize(problem, initial, settings, &optimize.NelderMead{})
	}
	if evalErr != nil {
		return domain.EnergyResult{}, evalErr
	}
	if err != nil {
		return domain.EnergyResult{}, fmt.Errorf("optimization failed: %w", err)
	}

	successStatuses := map[optimize.Status]bool{
		optimize.Success:             true,
		optimize.GradientThreshold:   true,
		optimize.FunctionConvergence: true,
	}

	iterations := result.Stats.MajorIterations
	if iterations > cfg.MaxIterations {
		iterations = cfg.MaxIterations
	}

	o.log.Debug().
		Float64("energy", result.F).
		Int("iterations", iterations).
		Str("status", result.Status.String()).
		Msg("Deterministic optimization finished")

	params := make([]float64, len(result.X))
	copy(params, result.X)

	return domain.EnergyResult{
		Value:          result.F,
		Params:         params,
		IterationsUsed: iterations,
		Converged:      successStatuses[result.Status],
		Trace:          trace,
	}, nil
}
