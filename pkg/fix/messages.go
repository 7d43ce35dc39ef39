package fix

import (
	"strconv"

	"github.com/luxfeed/hftcore/pkg/types"
)

// wireSide maps the domain Side enum to its FIX tag-54 value.
func wireSide(s types.Side) string {
	if s == types.Sell {
		return WireSideSell
	}
	return WireSideBuy
}

// TickToMarketDataSnapshot builds a MARKET_DATA_SNAPSHOT (MsgType W) frame
// carrying the top of book plus last trade, per spec.md §6's external
// interface for publishing a Tick over FIX.
func TickToMarketDataSnapshot(t types.Tick) *Frame {
	f := NewFrame()
	f.Set(TagMsgType, MsgTypeMarketDataSnapshot)
	f.Set(TagSymbol, t.Symbol)
	f.SetPrice(TagBidPx, t.Bid)
	f.SetPrice(TagOfferPx, t.Ask)
	f.SetPrice(TagBidSize, t.BidSize)
	f.SetPrice(TagOfferSize, t.AskSize)
	f.SetPrice(TagLastPx, t.Last)
	f.SetPrice(TagLastQty, t.LastSize)
	return f
}

// TradeToExecutionReport builds an EXECUTION_REPORT (MsgType 8) frame for a
// fill, per spec.md §6.
func TradeToExecutionReport(orderID string, t types.Trade) *Frame {
	f := NewFrame()
	f.Set(TagMsgType, MsgTypeExecutionReport)
	f.Set(TagOrderID, orderID)
	f.Set(TagExecID, orderID)
	f.Set(TagExecType, "F") // trade
	f.Set(TagOrdStatus, "2") // filled
	f.Set(TagSymbol, t.Symbol)
	f.SetPrice(TagLastPx, t.Price)
	f.SetPrice(TagLastQty, t.Quantity)
	return f
}

// wireOrdType maps the domain OrderType enum to its FIX tag-40 value.
func wireOrdType(t types.OrderType) string {
	switch t {
	case types.Market:
		return "1"
	case types.Stop:
		return "3"
	default:
		return "2" // limit
	}
}

// NewOrderSingle builds a NEW_ORDER_SINGLE (MsgType D) frame for submit_order,
// per spec.md §6.
func NewOrderSingle(o types.Order) *Frame {
	f := NewFrame()
	f.Set(TagMsgType, MsgTypeNewOrderSingle)
	f.Set(TagClOrdID, strconv.FormatUint(o.ID, 10))
	f.Set(TagSymbol, o.Symbol)
	f.Set(TagSide, wireSide(o.Side))
	f.Set(TagOrdType, wireOrdType(o.Type))
	f.SetInt(TagOrderQty, int64(o.Quantity))
	if o.Type != types.Market {
		f.SetPrice(TagPrice, o.Price)
	}
	return f
}
