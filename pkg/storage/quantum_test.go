package storage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateVector_InitialState(t *testing.T) {
	v := initialState()
	assert.Equal(t, StateVector{1, 0, 0, 1}, v)
	assert.InDelta(t, math.Sqrt2, v.Norm(), 1e-12)
	assert.InDelta(t, 0.5, v.MeanAmplitude(), 1e-12)
}

func TestStateVector_Normalize(t *testing.T) {
	v := StateVector{3, 0, 4, 0}.normalize()
	assert.InDelta(t, 1.0, v.Norm(), 1e-12)
	assert.InDelta(t, 0.6, v[0], 1e-12)
	assert.InDelta(t, 0.8, v[2], 1e-12)

	// Zero vectors stay put instead of dividing by zero.
	var zero StateVector
	assert.Equal(t, zero, zero.normalize())
}

func TestNextState_ZeroNoise(t *testing.T) {
	for count := 1; count <= 8; count++ {
		got := nextState(count, stubSource{})
		exp := expectState(count)
		for i := range exp {
			require.InDelta(t, exp[i], got[i], 1e-12, "state[%d] at count %d", i, count)
		}
		require.InDelta(t, 1.0, got.Norm(), 1e-12, "norm at count %d", count)
	}
}

func TestNextState_NoiseStaysUnit(t *testing.T) {
	rng := NewSource(42)
	for count := 1; count <= 32; count++ {
		got := nextState(count, rng)
		require.InDelta(t, 1.0, got.Norm(), 1e-12, "norm at count %d", count)
	}
}
