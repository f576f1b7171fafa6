package qsweep

import "runtime"

// Strategy selects how a worker derives its butterfly pairs.
type Strategy int

const (
	// ClosedForm computes each pair from the work index with block arithmetic.
	ClosedForm Strategy = iota
	// BitVector walks a BinaryIndex over the non-target bits.
	BitVector
)

func (s Strategy) String() string {
	switch s {
	case ClosedForm:
		return "closed"
	case BitVector:
		return "bitvector"
	default:
		return "unknown"
	}
}

type Config struct {
	// Workers is the pool size. Zero or less means GOMAXPROCS.
	Workers int
	// Strategy picks the pair addressing used by Transform.
	Strategy Strategy
	// MaxQubits lowers the register ceiling below MaxQubits when positive.
	MaxQubits int
	// MaxMemoryPercent is the share of physical memory amplitudes may use (0.0-1.0].
	MaxMemoryPercent float64
	// Pool, when set, is shared instead of starting a pool per vector.
	Pool *Pool
}

func NewConfig() *Config {
	return &Config{
		Workers:          runtime.GOMAXPROCS(0),
		Strategy:         ClosedForm,
		MaxQubits:        MaxQubits,
		MaxMemoryPercent: 0.8,
	}
}
