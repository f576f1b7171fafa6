//go:build !linux

package qsweep

func physicalMemory() uint64 {
	return 0
}
