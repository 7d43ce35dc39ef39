package ring

import (
	"runtime"
	"sync/atomic"
)

type mpscSlot[T any] struct {
	occupied atomic.Bool
	value    T
}

// MPSC is a fixed-capacity ring buffer for multiple producers and a single
// consumer. Producers reserve a slot with fetch-add on tail and publish by
// setting the slot's occupancy flag; the consumer observes occupancy before
// reading and clears it after. Commit order as seen by the consumer is the
// order producers released their slots, not the tail-reservation order —
// the MPSC fairness note in spec.md is preserved deliberately, not fixed.
type MPSC[T any] struct {
	slots []mpscSlot[T]
	mask  uint64

	_    [cacheLinePad]byte
	tail atomic.Uint64
	_    [cacheLinePad]byte
	head atomic.Uint64
	_    [cacheLinePad]byte
}

// NewMPSC allocates a ring of at least capacity slots (rounded up to the
// next power of two).
func NewMPSC[T any](capacity int) *MPSC[T] {
	n := nextPow2(capacity)
	return &MPSC[T]{
		slots: make([]mpscSlot[T], n),
		mask:  uint64(n - 1),
	}
}

// Push reserves a slot and publishes item. It fails only when the ring is
// full (tail is a full capacity ahead of head: every slot is reserved and
// not yet popped by the consumer). If the reserved slot is still marked occupied from a prior
// wrap, the caller has out-run the consumer by a full lap; the producer
// yields until the slot clears.
func (r *MPSC[T]) Push(item T) bool {
	for {
		tail := r.tail.Load()
		head := r.head.Load()
		if tail-head >= uint64(len(r.slots)) {
			return false
		}
		if r.tail.CompareAndSwap(tail, tail+1) {
			slot := &r.slots[tail&r.mask]
			for slot.occupied.Load() {
				runtime.Gosched()
			}
			slot.value = item
			slot.occupied.Store(true) // release: publishes value
			return true
		}
	}
}

// Pop removes the next committed item. It fails only when the slot at head
// is not yet occupied (empty, or a producer has reserved but not published
// it yet).
func (r *MPSC[T]) Pop() (T, bool) {
	var zero T
	head := r.head.Load()
	slot := &r.slots[head&r.mask]
	if !slot.occupied.Load() { // acquire
		return zero, false
	}
	v := slot.value
	slot.occupied.Store(false) // release: frees slot for reuse
	r.head.Add(1)              // relaxed: single consumer
	return v, true
}

// Capacity returns the number of slots in the ring.
func (r *MPSC[T]) Capacity() int {
	return len(r.slots)
}
