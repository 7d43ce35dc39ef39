// Package clock provides the monotonic time source and periodic scheduling
// primitive the rest of the core is built on: no component in this module
// stamps a Tick, Trade, or latency sample from anything but Now.
package clock

import "time"

// Now returns a monotonic, nanosecond-precision instant. It is backed by
// time.Now, which on every platform Go supports carries a monotonic reading
// that is immune to wall-clock adjustments (NTP step, user changing the
// system clock); callers must never strip it with Round or marshal through
// a format that drops it.
func Now() time.Time {
	return time.Now()
}
