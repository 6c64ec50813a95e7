//go:build linux

package platform

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// numCPU honors the scheduler affinity mask, which may be narrower than
// the machine inside containers or under taskset.
func numCPU() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err == nil {
		if n := set.Count(); n > 0 {
			return n
		}
	}
	return runtime.NumCPU()
}
