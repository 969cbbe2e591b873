package ansatz

import (
	"testing"

	"github.com/aristath/qbind/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterCount(t *testing.T) {
	tests := []struct {
		numQubits   int
		repetitions int
		want        int
	}{
		{4, 2, 12},
		{4, 3, 16},
		{1, 0, 1},
		{2, 0, 2},
		{3, 5, 18},
	}

	for _, tt := range tests {
		spec, err := New(tt.numQubits, RotationRY, EntanglementCX, tt.repetitions)
		require.NoError(t, err)
		assert.Equal(t, tt.want, spec.ParameterCount(),
			"qubits=%d reps=%d", tt.numQubits, tt.repetitions)
	}
}

func TestNew_InvalidQubitCount(t *testing.T) {
	_, err := New(0, RotationRY, EntanglementCX, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConstruction)

	_, err = New(-3, RotationRY, EntanglementCX, 2)
	assert.ErrorIs(t, err, domain.ErrConstruction)
}

func TestNew_NegativeRepetitions(t *testing.T) {
	_, err := New(4, RotationRY, EntanglementCX, -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConstruction)
}

func TestNew_UnknownKinds(t *testing.T) {
	_, err := New(4, RotationKind("rw"), EntanglementCX, 2)
	assert.ErrorIs(t, err, domain.ErrConstruction)

	_, err = New(4, RotationRY, EntanglementKind("swap"), 2)
	assert.ErrorIs(t, err, domain.ErrConstruction)
}

func TestParseKinds(t *testing.T) {
	rot, err := ParseRotationKind("ry")
	require.NoError(t, err)
	assert.Equal(t, RotationRY, rot)

	_, err = ParseRotationKind("h")
	assert.ErrorIs(t, err, domain.ErrConstruction)

	ent, err := ParseEntanglementKind("cz")
	require.NoError(t, err)
	assert.Equal(t, EntanglementCZ, ent)

	_, err = ParseEntanglementKind("cnot3")
	assert.ErrorIs(t, err, domain.ErrConstruction)
}
