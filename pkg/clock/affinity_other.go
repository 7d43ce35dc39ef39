//go:build !linux

package clock

// pinCurrentThread reports failure on platforms without an affinity API
// wired in; no side effects are taken, per the platform-feature-absence
// policy in spec.md.
func pinCurrentThread(cpu int) bool {
	return false
}

func raisePriority() bool {
	return false
}

func availableCPUs() []int {
	return numCPUFallback()
}
