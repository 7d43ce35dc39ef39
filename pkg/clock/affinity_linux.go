//go:build linux

package clock

import "golang.org/x/sys/unix"

// pinCurrentThread uses sched_setaffinity to restrict the calling thread to
// a single CPU. Mirrors the PinToCPU approach sketched against
// sched_setaffinity in the matching-engine reference code, wired to a real
// syscall instead of left commented out.
func pinCurrentThread(cpu int) bool {
	if cpu < 0 {
		return false
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return false
	}
	return true
}

// raisePriority lowers the nice value (raises scheduling priority) of the
// calling process. Requires CAP_SYS_NICE or an already-favorable nice
// ceiling; absent that it fails harmlessly.
func raisePriority() bool {
	return unix.Setpriority(unix.PRIO_PROCESS, 0, -10) == nil
}

// availableCPUs reads the process's affinity mask via sched_getaffinity,
// mirroring CpuOptimizer::get_available_cpus (which enumerates
// sysconf(_SC_NPROCESSORS_ONLN) ids in the original). Falls back to
// runtime.NumCPU() if the syscall fails.
func availableCPUs() []int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return numCPUFallback()
	}
	const maxCPUSetBits = 1024 // matches unix.CPUSet's underlying _CPU_SETSIZE
	want := set.Count()
	ids := make([]int, 0, want)
	for cpu := 0; cpu < maxCPUSetBits && len(ids) < want; cpu++ {
		if set.IsSet(cpu) {
			ids = append(ids, cpu)
		}
	}
	if len(ids) == 0 {
		return numCPUFallback()
	}
	return ids
}
