// Package ansatz describes the parameterized state-generation family: a
// two-local circuit of single-qubit rotation layers interleaved with pairwise
// entangling layers.
package ansatz

import (
	"fmt"

	"github.com/aristath/qbind/internal/domain"
)

// RotationKind selects the single-qubit rotation applied in each rotation
// layer.
type RotationKind string

// EntanglementKind selects the two-qubit gate applied in each entangling
// layer.
type EntanglementKind string

const (
	RotationRY RotationKind = "ry"
	RotationRX RotationKind = "rx"
	RotationRZ RotationKind = "rz"

	EntanglementCX EntanglementKind = "cx"
	EntanglementCZ EntanglementKind = "cz"
)

// Spec is an immutable description of one ansatz. The circuit alternates a
// rotation layer (one parameter per qubit) with an entangling layer over a
// linear chain (qubit i controls qubit i+1), Repetitions times, then closes
// with a final rotation layer.
type Spec struct {
	numQubits    int
	rotation     RotationKind
	entanglement EntanglementKind
	repetitions  int
}

// New validates the fields and builds a Spec.
func New(numQubits int, rotation RotationKind, entanglement EntanglementKind, repetitions int) (*Spec, error) {
	if numQubits <= 0 {
		return nil, fmt.Errorf("%w: qubit count must be positive, got %d", domain.ErrConstruction, numQubits)
	}
	if repetitions < 0 {
		return nil, fmt.Errorf("%w: repetitions must be non-negative, got %d", domain.ErrConstruction, repetitions)
	}
	switch rotation {
	case RotationRY, RotationRX, RotationRZ:
	default:
		return nil, fmt.Errorf("%w: unknown rotation kind %q", domain.ErrConstruction, rotation)
	}
	switch entanglement {
	case EntanglementCX, EntanglementCZ:
	default:
		return nil, fmt.Errorf("%w: unknown entanglement kind %q", domain.ErrConstruction, entanglement)
	}

	return &Spec{
		numQubits:    numQubits,
		rotation:     rotation,
		entanglement: entanglement,
		repetitions:  repetitions,
	}, nil
}

// ParseRotationKind maps a string literal to a RotationKind.
func ParseRotationKind(s string) (RotationKind, error) {
	switch RotationKind(s) {
	case RotationRY, RotationRX, RotationRZ:
		return RotationKind(s), nil
	}
	return "", fmt.Errorf("%w: unknown rotation kind %q", domain.ErrConstruction, s)
}

// ParseEntanglementKind maps a string literal to an EntanglementKind.
func ParseEntanglementKind(s string) (EntanglementKind, error) {
	switch EntanglementKind(s) {
	case EntanglementCX, EntanglementCZ:
		return EntanglementKind(s), nil
	}
	return "", fmt.Errorf("%w: unknown entanglement kind %q", domain.ErrConstruction, s)
}

// NumQubits returns the qubit count.
func (s *Spec) NumQubits() int { return s.numQubits }

// Rotation returns the rotation kind.
func (s *Spec) Rotation() RotationKind { return s.rotation }

// Entanglement returns the entangling gate kind.
func (s *Spec) Entanglement() EntanglementKind { return s.entanglement }

// Repetitions returns the entangling layer count.
func (s *Spec) Repetitions() int { return s.repetitions }

// ParameterCount returns the number of free parameters the circuit consumes:
// one rotation layer before each entangling layer plus a final rotation
// layer, one parameter per qubit per layer.
func (s *Spec) ParameterCount() int {
	return s.numQubits * (s.repetitions + 1)
}
