package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfeed/hftcore/pkg/types"
)

func TestAddTradeBuildsOHLCVWithinOneBucket(t *testing.T) {
	a := NewPrintAggregator(nil)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	a.AddTrade(types.Trade{Symbol: "BTC-USD", Price: 100, Quantity: 1, Timestamp: base})
	a.AddTrade(types.Trade{Symbol: "BTC-USD", Price: 110, Quantity: 2, Timestamp: base.Add(100 * time.Millisecond)})
	a.AddTrade(types.Trade{Symbol: "BTC-USD", Price: 90, Quantity: 1, Timestamp: base.Add(200 * time.Millisecond)})

	c := a.Snapshot("BTC-USD", Interval1s)
	require.NotNil(t, c)
	assert.Equal(t, 100.0, c.Open)
	assert.Equal(t, 110.0, c.High)
	assert.Equal(t, 90.0, c.Low)
	assert.Equal(t, 90.0, c.Close)
	assert.Equal(t, 4.0, c.Volume)
	assert.Equal(t, 3, c.Trades)
	assert.False(t, c.Complete)
}

func TestAddTradeRollsOverToNewBucketAndPublishes(t *testing.T) {
	a := NewPrintAggregator(nil)
	ch := a.Subscribe("BTC-USD")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	a.AddTrade(types.Trade{Symbol: "BTC-USD", Price: 100, Quantity: 1, Timestamp: base})
	a.AddTrade(types.Trade{Symbol: "BTC-USD", Price: 105, Quantity: 1, Timestamp: base.Add(2 * time.Second)})

	select {
	case c := <-ch:
		assert.True(t, c.Complete)
		assert.Equal(t, 100.0, c.Close)
	default:
		t.Fatal("expected a completed candle to be published on bucket rollover")
	}
}

func TestStatsCountsTradesAndCandles(t *testing.T) {
	a := NewPrintAggregator(nil)
	a.AddTrade(types.Trade{Symbol: "BTC-USD", Price: 100, Quantity: 1, Timestamp: time.Now()})

	trades, candles := a.Stats()
	assert.Equal(t, uint64(1), trades)
	assert.Equal(t, uint64(3), candles) // one new candle per interval (1s/1m/5m)
}

func TestSnapshotOfUnknownSymbolIsNil(t *testing.T) {
	a := NewPrintAggregator(nil)
	assert.Nil(t, a.Snapshot("NOPE", Interval1s))
}
