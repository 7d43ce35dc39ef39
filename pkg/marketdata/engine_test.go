package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfeed/hftcore/pkg/types"
)

func TestAddSymbolSeedsAValidTick(t *testing.T) {
	e := New(Config{})
	require.NoError(t, e.AddSymbol("BTC-USD", 50000))

	snap := e.CurrentSnapshot()
	require.Len(t, snap, 1)
	assert.True(t, snap[0].Valid())
	assert.Equal(t, "BTC-USD", snap[0].Symbol)
}

func TestAddSymbolRejectedAfterStart(t *testing.T) {
	e := New(Config{})
	require.NoError(t, e.AddSymbol("BTC-USD", 50000))
	e.Start()
	defer e.Stop()

	err := e.AddSymbol("ETH-USD", 3000)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestEngineProducesValidTicksOnStart(t *testing.T) {
	e := New(Config{OutputCapacity: 1024})
	require.NoError(t, e.AddSymbol("BTC-USD", 50000))
	e.Start()
	defer e.Stop()

	var tick types.Tick
	require.Eventually(t, func() bool {
		v, ok := e.Output().Pop()
		if !ok {
			return false
		}
		tick = v
		return true
	}, time.Second, time.Millisecond)
	assert.True(t, tick.Valid())
}

func TestStartIsIdempotent(t *testing.T) {
	e := New(Config{})
	require.NoError(t, e.AddSymbol("BTC-USD", 50000))
	e.Start()
	e.Start()
	e.Stop()
}

func TestOnPrintEventuallyFiresOnTradePrints(t *testing.T) {
	fired := make(chan types.Trade, 1024)
	e := New(Config{OnPrint: func(tr types.Trade) {
		select {
		case fired <- tr:
		default:
		}
	}})
	require.NoError(t, e.AddSymbol("BTC-USD", 50000))
	e.Start()
	defer e.Stop()

	select {
	case tr := <-fired:
		assert.Equal(t, "BTC-USD", tr.Symbol)
	case <-time.After(2 * time.Second):
		t.Fatal("no print event observed within timeout")
	}
}
