// Package feed wraps a market-data engine with a subscription filter, per
// spec.md §9's redesign of the source's virtual MarketDataFeed hierarchy
// into a capability set: subscribe/unsubscribe/get_tick/subscribed_symbols.
// Only the simulated variant is specified here.
package feed

import (
	"sync"

	"github.com/luxfeed/hftcore/pkg/marketdata"
	"github.com/luxfeed/hftcore/pkg/types"
)

// Feed is the capability set every variant (simulated, live) implements.
type Feed interface {
	Subscribe(symbol string)
	Unsubscribe(symbol string)
	SubscribedSymbols() []string
	GetTick() (types.Tick, bool)
}

// Simulated wraps a marketdata.Engine and filters its tick stream to a
// caller-controlled subscription set. Filtering happens after Pop so the
// producer's hot path never dispatches per-symbol.
type Simulated struct {
	engine *marketdata.Engine

	mu   sync.Mutex
	subs map[string]struct{}
}

// NewSimulated wraps engine.
func NewSimulated(engine *marketdata.Engine) *Simulated {
	return &Simulated{
		engine: engine,
		subs:   make(map[string]struct{}),
	}
}

// Subscribe adds symbol to the subscription set. Duplicate calls are a
// no-op.
func (f *Simulated) Subscribe(symbol string) {
	f.mu.Lock()
	f.subs[symbol] = struct{}{}
	f.mu.Unlock()
}

// Unsubscribe removes symbol from the subscription set.
func (f *Simulated) Unsubscribe(symbol string) {
	f.mu.Lock()
	delete(f.subs, symbol)
	f.mu.Unlock()
}

// SubscribedSymbols returns the current subscription set in unspecified
// order.
func (f *Simulated) SubscribedSymbols() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.subs))
	for s := range f.subs {
		out = append(out, s)
	}
	return out
}

// GetTick pops one tick from the underlying engine. If the popped tick's
// symbol is not subscribed, GetTick reports empty and the tick is
// discarded.
func (f *Simulated) GetTick() (types.Tick, bool) {
	t, ok := f.engine.Output().Pop()
	if !ok {
		return types.Tick{}, false
	}
	f.mu.Lock()
	_, subscribed := f.subs[t.Symbol]
	f.mu.Unlock()
	if !subscribed {
		return types.Tick{}, false
	}
	return t, true
}

var _ Feed = (*Simulated)(nil)
