//go:build linux

package qsweep

import "golang.org/x/sys/unix"

// physicalMemory returns total RAM in bytes, or 0 when it cannot be read.
func physicalMemory() uint64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0
	}

	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	return uint64(info.Totalram) * unit
}
