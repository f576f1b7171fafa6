package qsweep

import (
	"math/cmplx"

	"github.com/theapemachine/errnie"
)

// Comparison is the outcome of Compare.
type Comparison struct {
	Equal bool
	// MaxGap is the largest |a_i - b_i| seen, at Index.
	MaxGap float64
	Index  int
}

/*
Compare checks two registers of the same width element by element. Two
amplitudes agree when the magnitude of their difference is at most tolerance.
This is a debugging aid; nothing in the transform depends on it.
*/
func Compare(a, b *StateVector, tolerance float64) (Comparison, error) {
	if a.qubits != b.qubits {
		return Comparison{}, ErrLengthMismatch
	}

	result := Comparison{Equal: true}
	for i := range a.amplitudes {
		gap := cmplx.Abs(a.amplitudes[i] - b.amplitudes[i])
		if gap > result.MaxGap {
			result.MaxGap = gap
			result.Index = i
		}
	}
	result.Equal = result.MaxGap <= tolerance

	if result.Equal {
		errnie.Info("vectors match, max gap %g at index %d", result.MaxGap, result.Index)
	} else {
		errnie.Info("vectors differ, max gap %g at index %d exceeds %g", result.MaxGap, result.Index, tolerance)
	}

	return result, nil
}
