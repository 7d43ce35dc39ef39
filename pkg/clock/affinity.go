package clock

import "runtime"

// PinCurrentThread attempts to pin the calling OS thread to cpu. It does not
// change scheduling priority; see RaisePriority for that. It is a
// best-effort hint: on platforms
// or kernels where affinity/priority control is unavailable it returns false
// without taking any side effect, per spec.md's "platform-feature absence"
// error policy. Callers must call runtime.LockOSThread themselves first so
// the goroutine cannot migrate off the pinned thread.
func PinCurrentThread(cpu int) bool {
	return pinCurrentThread(cpu)
}

// RaisePriority attempts to raise the scheduling priority of the calling
// thread. Like PinCurrentThread, it is opportunistic and reports failure
// with no side effects where the platform does not support it.
func RaisePriority() bool {
	return raisePriority()
}

// AvailableCPUs returns the CPU ids the calling process is allowed to run
// on, mirroring CpuOptimizer::get_available_cpus from the original
// reference implementation. Where the platform exposes no affinity mask,
// it falls back to every id in [0, runtime.NumCPU()).
func AvailableCPUs() []int {
	return availableCPUs()
}

// numCPUFallback lists every id in [0, runtime.NumCPU()), used where the
// platform exposes no affinity mask to read.
func numCPUFallback() []int {
	ids := make([]int, runtime.NumCPU())
	for i := range ids {
		ids[i] = i
	}
	return ids
}
