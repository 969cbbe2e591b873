package simulation

import (
	"math"
	"testing"

	"github.com/aristath/qbind/internal/domain"
	"github.com/aristath/qbind/internal/modules/estimation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(estimation.NewEstimator(zerolog.Nop()), zerolog.Nop())
}

func TestRun_IdentityOnlyEndToEnd(t *testing.T) {
	req := domain.SimulationRequest{
		PauliTerms:    []string{"IIII"},
		Coefficients:  []float64{-2.1},
		NumQubits:     4,
		Rotation:      "ry",
		Entanglement:  "cx",
		Repetitions:   2,
		Strategy:      "deterministic",
		MaxIterations: 100,
		Thresholds:    DefaultThresholds(),
	}

	result, err := newTestService().Run(req)
	require.NoError(t, err)

	// Only the identity term contributes, so the energy is exactly the
	// coefficient and -2.1 is not below the -2.5 bound.
	assert.Equal(t, -2.1, result.Energy.Value)
	assert.Equal(t, "moderate", result.Verdict)
	assert.True(t, result.Energy.Converged)
	assert.InDelta(t, 2.1, result.EnergyBound, 1e-12)
}

func TestRun_MproPresetDeterministic(t *testing.T) {
	result, err := newTestService().Run(MproPreset())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.Energy.Value, -4.45-1e-9)
	assert.LessOrEqual(t, result.Energy.Value, 4.45+1e-9)
	assert.NotEmpty(t, result.Verdict)
}

func TestRun_SPSAReproducibleAcrossRuns(t *testing.T) {
	req := MproSPSAPreset()
	req.MaxIterations = 50

	first, err := newTestService().Run(req)
	require.NoError(t, err)
	second, err := newTestService().Run(req)
	require.NoError(t, err)

	assert.Equal(t, first.Energy.Value, second.Energy.Value)
	assert.Equal(t, first.Verdict, second.Verdict)
}

func TestRun_ConstructionErrorPropagates(t *testing.T) {
	req := MproPreset()
	req.PauliTerms = append(req.PauliTerms, "III") // wrong length

	_, err := newTestService().Run(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConstruction)
}

func TestRun_UnknownStrategyPropagates(t *testing.T) {
	req := MproPreset()
	req.Strategy = "gradient-descent"

	_, err := newTestService().Run(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConstruction)
}

func TestRun_InvalidThresholdsPropagate(t *testing.T) {
	req := MproPreset()
	req.Thresholds = []domain.AffinityThreshold{{Bound: -2.5, Label: "high"}}

	_, err := newTestService().Run(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConstruction)
}

func TestPresets(t *testing.T) {
	det := MproPreset()
	assert.Equal(t, "deterministic", det.Strategy)
	assert.Equal(t, 2, det.Repetitions)
	assert.Equal(t, 100, det.MaxIterations)
	assert.Len(t, det.PauliTerms, 13)
	assert.Len(t, det.Coefficients, 13)

	spsa := MproSPSAPreset()
	assert.Equal(t, "spsa", spsa.Strategy)
	assert.Equal(t, 3, spsa.Repetitions)
	assert.Equal(t, 200, spsa.MaxIterations)

	thresholds := DefaultThresholds()
	require.Len(t, thresholds, 3)
	assert.True(t, math.IsInf(thresholds[2].Bound, 1))
}
