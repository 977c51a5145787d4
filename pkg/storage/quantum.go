package storage

import "math"

// stateSize is the number of oscillator entries the model evolves.
const stateSize = 4

// StateVector holds the oscillator amplitudes that drive the capacity
// multiplier. It is replaced wholesale on every registration and kept
// unit-normalized.
type StateVector [stateSize]float64

// initialState is the oscillator vector of a freshly constructed System.
func initialState() StateVector {
	return StateVector{1.0, 0.0, 0.0, 1.0}
}

// Norm returns the Euclidean norm of the vector.
func (v StateVector) Norm() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// MeanAmplitude returns the mean absolute entry, the oscillator's
// contribution to the capacity multiplier.
func (v StateVector) MeanAmplitude() float64 {
	var sum float64
	for _, x := range v {
		sum += math.Abs(x)
	}
	return sum / stateSize
}

// normalize scales v to unit norm. A zero vector comes back unchanged.
func (v StateVector) normalize() StateVector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	for i := range v {
		v[i] /= n
	}
	return v
}

// nextState computes the replacement oscillator vector after a
// registration: per entry, a cosine phase term driven by the tracked-file
// count plus a small uniform jitter, then normalized.
func nextState(fileCount int, rng Source) StateVector {
	var v StateVector
	phase := float64(fileCount) * 0.1
	for i := range v {
		v[i] = math.Cos(phase+float64(i)*math.Pi/4) + 0.1*rng.Uniform(-1, 1)
	}
	return v.normalize()
}
