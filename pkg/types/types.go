// Package types holds the wire-level records shared by the ring transport,
// the market-data engine, and the FIX codec: Tick, Trade, and Order.
package types

import "time"

// Side is the direction of an order.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Sell {
		return "SELL"
	}
	return "BUY"
}

// OrderType is the execution style of an order.
type OrderType uint8

const (
	Market OrderType = iota
	Limit
	Stop
)

func (t OrderType) String() string {
	switch t {
	case Market:
		return "MARKET"
	case Stop:
		return "STOP"
	default:
		return "LIMIT"
	}
}

// OrderStatus is the lifecycle state of an Order.
type OrderStatus uint8

const (
	StatusPending OrderStatus = iota
	StatusFilled
	StatusPartiallyFilled
	StatusCancelled
	StatusRejected
)

func (s OrderStatus) String() string {
	switch s {
	case StatusFilled:
		return "FILLED"
	case StatusPartiallyFilled:
		return "PARTIALLY_FILLED"
	case StatusCancelled:
		return "CANCELLED"
	case StatusRejected:
		return "REJECTED"
	default:
		return "PENDING"
	}
}

// Tick is an immutable top-of-book + last-trade snapshot for one symbol at
// one instant. Produced by the market-data engine, consumed once by the feed
// facade. Invariant: Ask >= Bid+0.01, Bid >= 0.01, BidSize > 0, AskSize > 0.
type Tick struct {
	Symbol    string
	Bid       float64
	Ask       float64
	BidSize   float64
	AskSize   float64
	Last      float64
	LastSize  float64
	Timestamp time.Time
}

// Valid reports whether t satisfies the tick invariants from the data model.
func (t Tick) Valid() bool {
	return t.Bid >= 0.01 && t.Ask >= t.Bid+0.01 && t.BidSize > 0 && t.AskSize > 0
}

// Trade is a single execution: a print from the market-data engine's
// internal tick loop, or a parsed FIX execution report.
type Trade struct {
	Symbol    string
	Price     float64
	Quantity  float64
	Timestamp time.Time
	BuyerID   string
	SellerID  string
}

// Order is a numeric-identified order submitted through the FIX session
// engine. Invariant: 0 <= Filled <= Quantity.
type Order struct {
	ID        uint64
	Symbol    string
	Side      Side
	Type      OrderType
	Price     float64
	Quantity  float64
	Filled    float64
	Status    OrderStatus
	Timestamp time.Time
	ClientID  string
}

// Remaining returns the unfilled quantity.
func (o Order) Remaining() float64 {
	return o.Quantity - o.Filled
}
