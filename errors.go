package qsweep

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by state vector operations.
var (
	// ErrSizing is returned when a register cannot be sized: zero qubits, more
	// qubits than an index can address, or more amplitudes than memory allows.
	ErrSizing = errors.New("qsweep: invalid register size")

	// ErrAllocation is returned when the amplitude storage could not be allocated.
	ErrAllocation = errors.New("qsweep: allocation failed")

	// ErrRange is returned when a qubit or bit position is outside its bounds.
	ErrRange = errors.New("qsweep: position out of range")

	// ErrIndexOverflow is returned when a value does not fit a BinaryIndex.
	ErrIndexOverflow = errors.New("qsweep: index overflow")

	// ErrLengthMismatch is returned when two vectors, or a vector and a slice
	// of amplitudes, do not have the same size.
	ErrLengthMismatch = errors.New("qsweep: length mismatch")

	// ErrPoolClosed is returned when work is submitted to a closed pool.
	ErrPoolClosed = errors.New("qsweep: pool closed")
)

// RangeError reports a position argument outside [Min, Max].
type RangeError struct {
	Name  string
	Value int64
	Min   int64
	Max   int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("qsweep: %s %d out of range [%d, %d]", e.Name, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error {
	return ErrRange
}

func newRangeError(name string, value, lo, hi int64) error {
	return &RangeError{Name: name, Value: value, Min: lo, Max: hi}
}

// WorkIndexError reports a work index at or past the number of pairs. Work
// indices use the full uint64 range, so they are kept apart from RangeError.
type WorkIndexError struct {
	Work  uint64
	Pairs uint64
}

func (e *WorkIndexError) Error() string {
	return fmt.Sprintf("qsweep: work index %d out of range [0, %d)", e.Work, e.Pairs)
}

func (e *WorkIndexError) Unwrap() error {
	return ErrRange
}

// SizingError reports why a register of Qubits qubits was refused.
type SizingError struct {
	Qubits int
	Reason string
}

func (e *SizingError) Error() string {
	return fmt.Sprintf("qsweep: cannot size register of %d qubits: %s", e.Qubits, e.Reason)
}

func (e *SizingError) Unwrap() error {
	return ErrSizing
}

// AllocationError carries the amplitude count that failed to allocate.
type AllocationError struct {
	Count uint64
	Cause any
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("qsweep: could not allocate %d amplitudes: %v", e.Count, e.Cause)
}

func (e *AllocationError) Unwrap() error {
	return ErrAllocation
}
