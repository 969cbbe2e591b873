// Package simulation wires the full pipeline: operator construction, ansatz
// definition, variational optimization and affinity classification. The
// Service.Run method is the single entry point the outer layers call.
package simulation

import (
	"github.com/aristath/qbind/internal/domain"
	"github.com/aristath/qbind/internal/modules/affinity"
	"github.com/aristath/qbind/internal/modules/ansatz"
	"github.com/aristath/qbind/internal/modules/hamiltonian"
	"github.com/aristath/qbind/internal/modules/vqe"
	"github.com/aristath/qbind/internal/utils"
	"github.com/rs/zerolog"
)

// Service runs simulations. It holds no per-run state; concurrent Run calls
// are independent.
type Service struct {
	evaluator vqe.Evaluator
	log       zerolog.Logger
}

// NewService creates a new simulation service. Production wiring passes an
// *estimation.Estimator; tests may substitute any vqe.Evaluator.
func NewService(evaluator vqe.Evaluator, log zerolog.Logger) *Service {
	return &Service{
		evaluator: evaluator,
		log:       log.With().Str("component", "simulation").Logger(),
	}
}

// Run executes one full simulation: validates and builds the operator, ansatz
// and threshold table, minimizes the expectation energy, and classifies the
// result. Construction and numeric errors propagate unmodified; callers
// branch on them with errors.Is.
func (s *Service) Run(req domain.SimulationRequest) (*domain.SimulationResult, error) {
	op, err := hamiltonian.New(req.PauliTerms, req.Coefficients)
	if err != nil {
		return nil, err
	}

	rotation, err := ansatz.ParseRotationKind(req.Rotation)
	if err != nil {
		return nil, err
	}
	entanglement, err := ansatz.ParseEntanglementKind(req.Entanglement)
	if err != nil {
		return nil, err
	}
	spec, err := ansatz.New(req.NumQubits, rotation, entanglement, req.Repetitions)
	if err != nil {
		return nil, err
	}

	strategy, err := vqe.ParseStrategy(req.Strategy)
	if err != nil {
		return nil, err
	}

	table, err := affinity.NewTable(req.Thresholds)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("qubits", op.NumQubits()).
		Int("terms", len(req.PauliTerms)).
		Str("strategy", string(strategy)).
		Int("max_iterations", req.MaxIterations).
		Msg("Starting simulation")

	optimizer := vqe.New(s.evaluator, s.log)

	timer := utils.NewTimer("vqe_minimize", s.log)
	energy, err := optimizer.Minimize(op, spec, vqe.Config{
		Strategy:      strategy,
		MaxIterations: req.MaxIterations,
		Seed:          req.Seed,
	})
	duration := timer.Stop()
	if err != nil {
		return nil, err
	}

	verdict := table.Classify(energy.Value)

	s.log.Info().
		Float64("energy", energy.Value).
		Int("iterations", energy.IterationsUsed).
		Bool("converged", energy.Converged).
		Str("verdict", verdict).
		Msg("Simulation finished")

	return &domain.SimulationResult{
		Energy:      energy,
		Verdict:     verdict,
		EnergyBound: op.EnergyBound(),
		Duration:    duration,
	}, nil
}
