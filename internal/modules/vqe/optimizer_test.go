package vqe

import (
	"fmt"
	"testing"

	"github.com/aristath/qbind/internal/domain"
	"github.com/aristath/qbind/internal/modules/ansatz"
	"github.com/aristath/qbind/internal/modules/estimation"
	"github.com/aristath/qbind/internal/modules/hamiltonian"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOptimizer() *Optimizer {
	return New(estimation.NewEstimator(zerolog.Nop()), zerolog.Nop())
}

func mproOperator(t *testing.T) *hamiltonian.Operator {
	t.Helper()
	op, err := hamiltonian.New(
		[]string{"IIII", "ZIII", "IZII", "IIZI", "IIIZ", "ZZII", "ZIZI", "ZIIZ", "IZZI", "IZIZ", "IIZZ", "XXXX", "YYYY"},
		[]float64{-2.1, 0.5, 0.4, 0.5, 0.4, -0.1, -0.05, -0.05, -0.1, -0.05, -0.1, 0.05, 0.05},
	)
	require.NoError(t, err)
	return op
}

func mustSpec(t *testing.T, qubits, reps int) *ansatz.Spec {
	t.Helper()
	spec, err := ansatz.New(qubits, ansatz.RotationRY, ansatz.EntanglementCX, reps)
	require.NoError(t, err)
	return spec
}

func TestMinimize_InvalidMaxIterations(t *testing.T) {
	op := mproOperator(t)
	spec := mustSpec(t, 4, 2)

	_, err := newTestOptimizer().Minimize(op, spec, Config{
		Strategy:      StrategyDeterministic,
		MaxIterations: 0,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConstruction)
}

func TestMinimize_UnknownStrategy(t *testing.T) {
	op := mproOperator(t)
	spec := mustSpec(t, 4, 2)

	_, err := newTestOptimizer().Minimize(op, spec, Config{
		Strategy:      Strategy("annealing"),
		MaxIterations: 10,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConstruction)
}

func TestMinimize_DeterministicIdentityOnly(t *testing.T) {
	// Only the identity term contributes, so the objective is constant and
	// the optimizer converges immediately at exactly the coefficient.
	op, err := hamiltonian.New([]string{"IIII"}, []float64{-2.1})
	require.NoError(t, err)
	spec := mustSpec(t, 4, 2)

	result, err := newTestOptimizer().Minimize(op, spec, Config{
		Strategy:      StrategyDeterministic,
		MaxIterations: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, -2.1, result.Value)
	assert.True(t, result.Converged)
	assert.LessOrEqual(t, result.IterationsUsed, 100)
}

func TestMinimize_DeterministicIsReproducible(t *testing.T) {
	op := mproOperator(t)
	spec := mustSpec(t, 4, 2)
	cfg := Config{
		Strategy:      StrategyDeterministic,
		MaxIterations: 100,
	}

	first, err := newTestOptimizer().Minimize(op, spec, cfg)
	require.NoError(t, err)
	second, err := newTestOptimizer().Minimize(op, spec, cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Value, second.Value, "no randomness: results must be bit-identical")
	assert.Equal(t, first.IterationsUsed, second.IterationsUsed)
	assert.Equal(t, first.Converged, second.Converged)
	assert.Equal(t, first.Params, second.Params)
}

func TestMinimize_DeterministicImprovesOnInitialPoint(t *testing.T) {
	op := mproOperator(t)
	spec := mustSpec(t, 4, 2)

	// Energy at the zero vector is the sum of all Z-diagonal contributions
	// on |0000>; the optimizer must not do worse.
	estimator := estimation.NewEstimator(zerolog.Nop())
	initial, err := estimator.Evaluate(op, spec, make([]float64, spec.ParameterCount()))
	require.NoError(t, err)

	result, err := newTestOptimizer().Minimize(op, spec, Config{
		Strategy:      StrategyDeterministic,
		MaxIterations: 100,
	})
	require.NoError(t, err)

	assert.LessOrEqual(t, result.Value, initial)
	bound := op.EnergyBound()
	assert.GreaterOrEqual(t, result.Value, -bound-1e-9)
}

func TestMinimize_DeterministicRecordsBestSeenTrace(t *testing.T) {
	op := mproOperator(t)
	spec := mustSpec(t, 4, 2)

	result, err := newTestOptimizer().Minimize(op, spec, Config{
		Strategy:      StrategyDeterministic,
		MaxIterations: 100,
	})
	require.NoError(t, err)

	require.NotEmpty(t, result.Trace)
	for i := 1; i < len(result.Trace); i++ {
		assert.LessOrEqual(t, result.Trace[i], result.Trace[i-1],
			"best-seen trace must never regress")
	}
	// The final trace entry is the lowest energy any evaluation saw, which
	// can only match or undercut the returned minimizer value.
	assert.LessOrEqual(t, result.Trace[len(result.Trace)-1], result.Value+1e-12)
}

func TestMinimize_SPSASeedReproducibility(t *testing.T) {
	op := mproOperator(t)
	spec := mustSpec(t, 4, 3)
	cfg := Config{
		Strategy:      StrategySPSA,
		MaxIterations: 50,
		Seed:          42,
	}

	first, err := newTestOptimizer().Minimize(op, spec, cfg)
	require.NoError(t, err)
	second, err := newTestOptimizer().Minimize(op, spec, cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Value, second.Value)
	assert.Equal(t, first.Params, second.Params)
	assert.Equal(t, first.Trace, second.Trace)
}

func TestMinimize_SPSADifferentSeedsStayWithinBound(t *testing.T) {
	op := mproOperator(t)
	spec := mustSpec(t, 4, 3)
	bound := op.EnergyBound()

	for _, seed := range []int64{1, 7, 1234} {
		result, err := newTestOptimizer().Minimize(op, spec, Config{
			Strategy:      StrategySPSA,
			MaxIterations: 50,
			Seed:          seed,
		})
		require.NoError(t, err)

		assert.GreaterOrEqual(t, result.Value, -bound-1e-9, "seed %d", seed)
		assert.LessOrEqual(t, result.Value, bound+1e-9, "seed %d", seed)
	}
}

func TestMinimize_SPSANeverConvergesEarly(t *testing.T) {
	op := mproOperator(t)
	spec := mustSpec(t, 4, 2)

	result, err := newTestOptimizer().Minimize(op, spec, Config{
		Strategy:      StrategySPSA,
		MaxIterations: 30,
		Seed:          3,
	})
	require.NoError(t, err)

	assert.False(t, result.Converged)
	assert.Equal(t, 30, result.IterationsUsed)
	assert.Len(t, result.Trace, 30)
}

func TestMinimize_SPSATraceIsMonotonicallyImproving(t *testing.T) {
	op := mproOperator(t)
	spec := mustSpec(t, 4, 2)

	result, err := newTestOptimizer().Minimize(op, spec, Config{
		Strategy:      StrategySPSA,
		MaxIterations: 40,
		Seed:          11,
	})
	require.NoError(t, err)

	for i := 1; i < len(result.Trace); i++ {
		assert.LessOrEqual(t, result.Trace[i], result.Trace[i-1],
			"best-seen trace must never regress")
	}
	assert.LessOrEqual(t, result.Value, result.Trace[len(result.Trace)-1])
}

// failingEvaluator surfaces a numeric failure after a fixed number of calls.
type failingEvaluator struct {
	calls     int
	failAfter int
}

func (f *failingEvaluator) Evaluate(op *hamiltonian.Operator, spec *ansatz.Spec, params []float64) (float64, error) {
	f.calls++
	if f.calls > f.failAfter {
		return 0, fmt.Errorf("%w: evaluation blew up", domain.ErrNumeric)
	}
	return -1.0, nil
}

func TestMinimize_EvaluatorErrorAbortsDeterministic(t *testing.T) {
	op := mproOperator(t)
	spec := mustSpec(t, 4, 2)

	optimizer := New(&failingEvaluator{failAfter: 3}, zerolog.Nop())
	_, err := optimizer.Minimize(op, spec, Config{
		Strategy:      StrategyDeterministic,
		MaxIterations: 100,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNumeric)
}

func TestMinimize_EvaluatorErrorAbortsSPSA(t *testing.T) {
	op := mproOperator(t)
	spec := mustSpec(t, 4, 2)

	optimizer := New(&failingEvaluator{failAfter: 5}, zerolog.Nop())
	_, err := optimizer.Minimize(op, spec, Config{
		Strategy:      StrategySPSA,
		MaxIterations: 100,
		Seed:          1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNumeric)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("deterministic")
	require.NoError(t, err)
	assert.Equal(t, StrategyDeterministic, s)

	s, err = ParseStrategy("spsa")
	require.NoError(t, err)
	assert.Equal(t, StrategySPSA, s)

	_, err = ParseStrategy("cobyla")
	assert.ErrorIs(t, err, domain.ErrConstruction)
}
