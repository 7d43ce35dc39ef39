package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickValid(t *testing.T) {
	valid := Tick{Bid: 50000, Ask: 50001, BidSize: 1, AskSize: 1}
	assert.True(t, valid.Valid())

	tooTight := Tick{Bid: 50000, Ask: 50000.005, BidSize: 1, AskSize: 1}
	assert.False(t, tooTight.Valid())

	zeroBid := Tick{Bid: 0, Ask: 1, BidSize: 1, AskSize: 1}
	assert.False(t, zeroBid.Valid())

	zeroSize := Tick{Bid: 1, Ask: 2, BidSize: 0, AskSize: 1}
	assert.False(t, zeroSize.Valid())
}

func TestOrderRemaining(t *testing.T) {
	o := Order{Quantity: 10, Filled: 3}
	assert.Equal(t, 7.0, o.Remaining())
}

func TestEnumStringers(t *testing.T) {
	assert.Equal(t, "BUY", Buy.String())
	assert.Equal(t, "SELL", Sell.String())
	assert.Equal(t, "MARKET", Market.String())
	assert.Equal(t, "LIMIT", Limit.String())
	assert.Equal(t, "STOP", Stop.String())
	assert.Equal(t, "PENDING", StatusPending.String())
	assert.Equal(t, "FILLED", StatusFilled.String())
}
