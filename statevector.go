package qsweep

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/errnie"
)

/*
StateVector holds the 2^n complex amplitudes of an n-qubit register. Index i
read in binary, most significant bit first, is the basis state; qubit 1 is
that most significant bit.

Amplitudes are not kept normalized. The only mutation besides loading values
is Transform.
*/
type StateVector struct {
	qubits     int
	amplitudes []complex128
	strategy   Strategy
	config     *Config
	pool       *Pool
	ownsPool   bool
	metrics    *Metrics
}

/*
NewStateVector sizes and allocates a register of qubits qubits in the basis
state |0...0⟩. The sizing guard runs before allocation, so a refused size
allocates nothing. A nil config uses NewConfig.

Returns a *SizingError (ErrSizing) or *AllocationError (ErrAllocation) when
the register cannot be created.

Unless config.Pool is set the vector starts and owns a pool of workers, and
Close must be called to stop them.
*/
func NewStateVector(qubits int, config *Config) (*StateVector, error) {
	if config == nil {
		config = NewConfig()
	}

	governor := NewResourceGovernor(config.MaxQubits, config.MaxMemoryPercent)
	count, err := governor.Admit(qubits)
	if err != nil {
		return nil, err
	}

	amplitudes, err := allocate(count)
	if err != nil {
		return nil, err
	}
	amplitudes[0] = 1

	sv := newStateVector(qubits, amplitudes, config)
	errnie.Info("allocated %d-qubit state vector with %d amplitudes", qubits, count)

	return sv, nil
}

func newStateVector(qubits int, amplitudes []complex128, config *Config) *StateVector {
	sv := &StateVector{
		qubits:     qubits,
		amplitudes: amplitudes,
		strategy:   config.Strategy,
		config:     config,
		pool:       config.Pool,
		metrics:    NewMetrics(),
	}

	if sv.pool == nil {
		sv.pool = NewPool(context.Background(), config.Workers)
		sv.ownsPool = true
	}
	sv.metrics.setWorkers(sv.pool.Size())

	return sv
}

func allocate(count uint64) (amplitudes []complex128, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("amplitude allocation failed", "count", count, "cause", r)
			amplitudes, err = nil, &AllocationError{Count: count, Cause: r}
		}
	}()

	return make([]complex128, count), nil
}

// Qubits returns the register width n.
func (sv *StateVector) Qubits() int {
	return sv.qubits
}

// Len returns 2^n.
func (sv *StateVector) Len() int {
	return len(sv.amplitudes)
}

// At returns amplitude i.
func (sv *StateVector) At(i int) complex128 {
	return sv.amplitudes[i]
}

// Amplitudes returns a copy of the amplitudes.
func (sv *StateVector) Amplitudes() []complex128 {
	out := make([]complex128, len(sv.amplitudes))
	copy(out, sv.amplitudes)
	return out
}

// Strategy returns the pair addressing used by Transform.
func (sv *StateVector) Strategy() Strategy {
	return sv.strategy
}

func (sv *StateVector) Metrics() *Metrics {
	return sv.metrics
}

// SetAmplitudes loads externally supplied values. The slice must hold exactly
// 2^n entries.
func (sv *StateVector) SetAmplitudes(values []complex128) error {
	if len(values) != len(sv.amplitudes) {
		return ErrLengthMismatch
	}

	copy(sv.amplitudes, values)
	return nil
}

// Randomize fills the amplitudes with per-worker random values, see RandomFill.
func (sv *StateVector) Randomize(ctx context.Context, seed int64) error {
	return RandomFill(ctx, sv, seed)
}

/*
Clone returns a deep copy. The copy goes through the same sizing guard as a
new vector. It shares a pool supplied through Config and otherwise starts its
own with the same number of workers, in which case the clone must be closed
separately from the original.
*/
func (sv *StateVector) Clone() (*StateVector, error) {
	config := *sv.config
	config.Workers = sv.pool.Size()

	governor := NewResourceGovernor(config.MaxQubits, config.MaxMemoryPercent)
	count, err := governor.Admit(sv.qubits)
	if err != nil {
		return nil, err
	}

	amplitudes, err := allocate(count)
	if err != nil {
		return nil, err
	}
	copy(amplitudes, sv.amplitudes)

	return newStateVector(sv.qubits, amplitudes, &config), nil
}

/*
Transform applies the Hadamard kernel on qubit k, 1 ≤ k ≤ n, to every pair of
amplitudes whose indices differ only in bit k. The pairs are split across the
pool and Transform returns once every pair is updated. An out of range k
returns a *RangeError and leaves the amplitudes untouched.
*/
func (sv *StateVector) Transform(k int) error {
	layout, err := NewLayout(sv.qubits, k)
	if err != nil {
		return err
	}

	startTime := time.Now()

	var sweep func(rank int, lo, hi uint64)
	var errs []error

	switch sv.strategy {
	case BitVector:
		errs = make([]error, sv.pool.Size())
		sweep = sv.bitVectorSweep(layout, errs)
	default:
		sweep = sv.closedFormSweep(layout)
	}

	if err := sv.pool.Run(layout.Pairs, sweep); err != nil {
		return err
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	sv.metrics.recordTransform(k, layout.Pairs, startTime)
	return nil
}

func (sv *StateVector) closedFormSweep(layout Layout) func(rank int, lo, hi uint64) {
	amps := sv.amplitudes

	return func(_ int, lo, hi uint64) {
		for w := lo; w < hi; w++ {
			i1, i2 := layout.Pair(w)
			amps[i1], amps[i2] = butterfly(amps[i1], amps[i2])
		}
	}
}

// bitVectorSweep seeds each worker's counter at the start of its slice and
// steps it once per pair. Errors land in errs[rank]; with a validated layout
// none are expected.
func (sv *StateVector) bitVectorSweep(layout Layout, errs []error) func(rank int, lo, hi uint64) {
	amps := sv.amplitudes

	return func(rank int, lo, hi uint64) {
		index, err := NewBinaryIndex(layout.Qubits - 1)
		if err != nil {
			errs[rank] = err
			return
		}

		if err := index.SetFrom(lo); err != nil {
			errs[rank] = err
			return
		}

		for w := lo; w < hi; w++ {
			if w > lo {
				if err := index.Increment(); err != nil {
					errs[rank] = err
					return
				}
			}

			i1, err := index.ValueWithInsert(layout.Target, 0)
			if err != nil {
				errs[rank] = err
				return
			}
			i2, err := index.ValueWithInsert(layout.Target, 1)
			if err != nil {
				errs[rank] = err
				return
			}

			amps[i1], amps[i2] = butterfly(amps[i1], amps[i2])
		}
	}
}

// Close releases the vector's pool when it owns one.
func (sv *StateVector) Close() {
	if sv.ownsPool {
		sv.pool.Close()
	}
}
