//go:build !linux

package platform

import "runtime"

func numCPU() int {
	return runtime.NumCPU()
}
