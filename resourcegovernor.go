package qsweep

import (
	"fmt"
	"math"
	"runtime/debug"
	"sync"
)

const (
	// MaxQubits is the bit width of the uint64 used for amplitude indices.
	MaxQubits = 64

	amplitudeBytes = 16
)

/*
ResourceGovernor decides whether a register of a given size may be allocated.
It is the sizing guard run by NewStateVector before any storage is requested,
similar to how a power governor keeps an engine out of its damage range.

Key limits:
  - the qubit ceiling (MaxQubits or a lower configured one)
  - the uint64 index space (2^64 amplitudes cannot be counted)
  - the largest []complex128 the runtime can address
  - a byte budget derived from physical memory and the Go soft memory limit
*/
type ResourceGovernor struct {
	mu sync.RWMutex

	maxQubits        int     // Configured qubit ceiling
	maxMemoryPercent float64 // Share of physical memory amplitudes may use (0.0-1.0]
	budget           uint64  // Byte budget, 0 means unknown
}

/*
NewResourceGovernor creates a governor for the given qubit ceiling and memory share.

Parameters:
  - maxQubits: Highest qubit count admitted, clamped to [1, MaxQubits]
  - maxMemoryPercent: Share of physical memory amplitudes may occupy (0.0-1.0]

Example:

	governor := NewResourceGovernor(30, 0.8)
*/
func NewResourceGovernor(maxQubits int, maxMemoryPercent float64) *ResourceGovernor {
	if maxQubits <= 0 || maxQubits > MaxQubits {
		maxQubits = MaxQubits
	}

	if maxMemoryPercent <= 0 || maxMemoryPercent > 1 {
		maxMemoryPercent = 1
	}

	rg := &ResourceGovernor{
		maxQubits:        maxQubits,
		maxMemoryPercent: maxMemoryPercent,
	}
	rg.Renormalize()

	return rg
}

/*
Renormalize refreshes the byte budget from the current physical memory and
the runtime soft memory limit. The tighter of the two wins.
*/
func (rg *ResourceGovernor) Renormalize() {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	var budget uint64
	if total := physicalMemory(); total > 0 {
		budget = uint64(float64(total) * rg.maxMemoryPercent)
	}

	// SetMemoryLimit with a negative value only reads the limit.
	if limit := debug.SetMemoryLimit(-1); limit > 0 && limit < math.MaxInt64 {
		if budget == 0 || uint64(limit) < budget {
			budget = uint64(limit)
		}
	}

	rg.budget = budget
}

// Budget returns the byte budget, 0 when no limit could be determined.
func (rg *ResourceGovernor) Budget() uint64 {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	return rg.budget
}

// MaxQubits returns the configured qubit ceiling.
func (rg *ResourceGovernor) MaxQubits() int {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	return rg.maxQubits
}

// Admit returns the amplitude count 2^qubits, or a *SizingError explaining
// which limit the register would break.
func (rg *ResourceGovernor) Admit(qubits int) (uint64, error) {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	if qubits < 1 {
		return 0, &SizingError{Qubits: qubits, Reason: "a register needs at least one qubit"}
	}

	if qubits > rg.maxQubits {
		return 0, &SizingError{
			Qubits: qubits,
			Reason: fmt.Sprintf("more than the maximum of %d qubits", rg.maxQubits),
		}
	}

	if qubits >= MaxQubits {
		return 0, &SizingError{Qubits: qubits, Reason: "2^qubits does not fit a 64-bit index"}
	}

	count := uint64(1) << uint(qubits)

	maxLen := uint64(math.MaxInt) / amplitudeBytes
	if count > maxLen {
		return 0, &SizingError{
			Qubits: qubits,
			Reason: fmt.Sprintf("%d amplitudes exceed the addressable maximum of %d", count, maxLen),
		}
	}

	if rg.budget > 0 && count*amplitudeBytes > rg.budget {
		return 0, &SizingError{
			Qubits: qubits,
			Reason: fmt.Sprintf("%d bytes exceed the memory budget of %d bytes", count*amplitudeBytes, rg.budget),
		}
	}

	return count, nil
}
