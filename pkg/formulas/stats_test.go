package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{1.5}))
	assert.InDelta(t, 1.0, StdDev([]float64{1, 2, 3}), 1e-12)
}

func TestSumAbs(t *testing.T) {
	assert.Equal(t, 0.0, SumAbs(nil))
	assert.InDelta(t, 4.45, SumAbs([]float64{-2.1, 0.5, 0.4, 0.5, 0.4, -0.1, -0.05, -0.05, -0.1, -0.05, -0.1, 0.05, 0.05}), 1e-12)
}

func TestTail(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, []float64{4, 5}, Tail(data, 2))
	assert.Equal(t, data, Tail(data, 10))
	assert.Empty(t, Tail(nil, 3))
}
