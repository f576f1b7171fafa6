package qsweep

import "sync"

// Job is one contiguous slice [Lo, Hi) of a sweep handed to a single worker.
type Job struct {
	Rank int
	Lo   uint64
	Hi   uint64
	Fn   func(rank int, lo, hi uint64)
	done *sync.WaitGroup
}

// split cuts [0, total) into at most parts contiguous slices. The first
// total%parts slices are one item longer.
func split(total uint64, parts int) [][2]uint64 {
	if total == 0 || parts < 1 {
		return nil
	}

	n := uint64(parts)
	if n > total {
		n = total
	}

	size, rest := total/n, total%n
	slices := make([][2]uint64, 0, n)

	var lo uint64
	for i := uint64(0); i < n; i++ {
		hi := lo + size
		if i < rest {
			hi++
		}
		slices = append(slices, [2]uint64{lo, hi})
		lo = hi
	}

	return slices
}
