package qsweep

/*
Layout describes how the amplitudes of a register pair up for one target qubit.

Qubit positions count from 1 at the most significant bit of the index, so the
two members of a pair sit BlockSize apart, and every GroupSize span holds
BlockSize consecutive pairs. There are GroupCount such spans.

	qubits=3, target=2:  BlockSize=2  GroupSize=4  GroupCount=2
	index  0 1 2 3 | 4 5 6 7
	pairs  (0,2) (1,3) | (4,6) (5,7)
*/
type Layout struct {
	Qubits     int
	Target     int
	BlockSize  uint64
	GroupSize  uint64
	GroupCount uint64
	Pairs      uint64
}

// maxLayoutQubits keeps GroupSize, 2^(n-k+1), representable in a uint64.
const maxLayoutQubits = MaxQubits - 1

// NewLayout validates qubits and target and derives the pairing constants.
// Registers are limited to 63 qubits, the most the sizing guard admits.
func NewLayout(qubits, target int) (Layout, error) {
	if qubits < 1 || qubits > maxLayoutQubits {
		return Layout{}, newRangeError("qubit count", int64(qubits), 1, maxLayoutQubits)
	}

	if target < 1 || target > qubits {
		return Layout{}, newRangeError("qubit position", int64(target), 1, int64(qubits))
	}

	block := uint64(1) << uint(qubits-target)

	return Layout{
		Qubits:     qubits,
		Target:     target,
		BlockSize:  block,
		GroupSize:  block << 1,
		GroupCount: uint64(1) << uint(target-1),
		Pairs:      uint64(1) << uint(qubits-1),
	}, nil
}

/*
Pair maps a flattened work index in [0, Pairs) to the two amplitude offsets it
combines. The outer group is work/BlockSize and the offset inside that group is
work%BlockSize; both divide by BlockSize, never by GroupCount.
*/
func (l Layout) Pair(work uint64) (index1, index2 uint64) {
	group := work / l.BlockSize
	offset := work % l.BlockSize

	index1 = group*l.GroupSize + offset
	index2 = index1 + l.BlockSize

	return index1, index2
}

// Each visits every pair with the nested group/offset loop, in work index order.
func (l Layout) Each(fn func(index1, index2 uint64)) {
	for group := uint64(0); group < l.GroupCount; group++ {
		start := group * l.GroupSize

		for offset := uint64(0); offset < l.BlockSize; offset++ {
			fn(start+offset, start+offset+l.BlockSize)
		}
	}
}

// PairFor is the checked form of Layout.Pair.
func PairFor(qubits, target int, work uint64) (uint64, uint64, error) {
	layout, err := NewLayout(qubits, target)
	if err != nil {
		return 0, 0, err
	}

	if work >= layout.Pairs {
		return 0, 0, &WorkIndexError{Work: work, Pairs: layout.Pairs}
	}

	index1, index2 := layout.Pair(work)
	return index1, index2, nil
}
