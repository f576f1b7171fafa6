package qsweep

import "math"

var invSqrt2 = complex(1/math.Sqrt2, 0)

/*
butterfly applies the Hadamard kernel to one amplitude pair.

	H = 1/√2 * [1  1]
	           [1 -1]
*/
func butterfly(a, b complex128) (complex128, complex128) {
	return (a + b) * invSqrt2, (a - b) * invSqrt2
}
