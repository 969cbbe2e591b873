package estimation

import (
	"math"
	"math/cmplx"
)

// statevector holds the dense amplitude vector of an n-qubit state.
// Basis index bit q corresponds to qubit q.
type statevector struct {
	amps      []complex128
	numQubits int
}

// newStatevector prepares |0...0>.
func newStatevector(numQubits int) *statevector {
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &statevector{amps: amps, numQubits: numQubits}
}

func (s *statevector) clone() *statevector {
	amps := make([]complex128, len(s.amps))
	copy(amps, s.amps)
	return &statevector{amps: amps, numQubits: s.numQubits}
}

// innerProduct returns <s|other>.
func (s *statevector) innerProduct(other *statevector) complex128 {
	var sum complex128
	for i, a := range s.amps {
		sum += cmplx.Conj(a) * other.amps[i]
	}
	return sum
}

func (s *statevector) applyRX(q int, theta float64) {
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.amps[i], s.amps[j]
			s.amps[i] = c*a0 + js*a1
			s.amps[j] = js*a0 + c*a1
		}
	}
}

func (s *statevector) applyRY(q int, theta float64) {
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.amps[i], s.amps[j]
			s.amps[i] = c*a0 - sn*a1
			s.amps[j] = sn*a0 + c*a1
		}
	}
}

func (s *statevector) applyRZ(q int, theta float64) {
	bit := 1 << q
	pNeg := cmplx.Exp(complex(0, -theta/2))
	pPos := cmplx.Exp(complex(0, theta/2))
	for i := range s.amps {
		if i&bit == 0 {
			s.amps[i] *= pNeg
		} else {
			s.amps[i] *= pPos
		}
	}
}

func (s *statevector) applyX(q int) {
	bit := 1 << q
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

func (s *statevector) applyY(q int) {
	bit := 1 << q
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			s.amps[i], s.amps[j] = -1i*s.amps[j], 1i*s.amps[i]
		}
	}
}

func (s *statevector) applyZ(q int) {
	bit := 1 << q
	for i := range s.amps {
		if i&bit != 0 {
			s.amps[i] = -s.amps[i]
		}
	}
}

func (s *statevector) applyCX(control, target int) {
	cbit := 1 << control
	tbit := 1 << target
	for i := range s.amps {
		if i&cbit != 0 && i&tbit == 0 {
			j := i | tbit
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

func (s *statevector) applyCZ(control, target int) {
	cbit := 1 << control
	tbit := 1 << target
	for i := range s.amps {
		if i&cbit != 0 && i&tbit != 0 {
			s.amps[i] = -s.amps[i]
		}
	}
}
