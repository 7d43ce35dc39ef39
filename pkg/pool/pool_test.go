package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	n int
}

func TestPoolAcquireReleaseRoundTrip(t *testing.T) {
	p := New[widget](4)
	assert.Equal(t, 4, p.Capacity())

	a := p.Acquire()
	require.NotNil(t, a)
	a.n = 7
	assert.Equal(t, 1, p.AllocatedCount())

	p.Release(a)
	assert.Equal(t, 0, p.AllocatedCount())
}

func TestPoolExhaustionReturnsNil(t *testing.T) {
	p := New[widget](2)
	a := p.Acquire()
	b := p.Acquire()
	require.NotNil(t, a)
	require.NotNil(t, b)

	c := p.Acquire()
	assert.Nil(t, c)
}

func TestPoolReleaseFreesSlotForReacquire(t *testing.T) {
	p := New[widget](1)
	a := p.Acquire()
	require.NotNil(t, a)
	require.Nil(t, p.Acquire())

	p.Release(a)
	b := p.Acquire()
	require.NotNil(t, b)
	assert.Equal(t, a, b)
}

func TestPoolReleaseOfForeignPointerIsNoop(t *testing.T) {
	p := New[widget](2)
	a := p.Acquire()
	require.NotNil(t, a)

	foreign := &widget{}
	p.Release(foreign)
	assert.Equal(t, 1, p.AllocatedCount())
}

func TestPoolDistinctAcquiresReturnDistinctSlots(t *testing.T) {
	p := New[widget](8)
	seen := make(map[*widget]bool)
	for i := 0; i < 8; i++ {
		ptr := p.Acquire()
		require.NotNil(t, ptr)
		assert.False(t, seen[ptr])
		seen[ptr] = true
	}
	assert.Nil(t, p.Acquire())
}
