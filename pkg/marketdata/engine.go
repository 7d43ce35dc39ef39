// Package marketdata is the synthetic tick generator: on a 1ms cadence it
// mutates a per-symbol bid/ask/last snapshot and publishes Tick records into
// an SPSC ring for a single consuming feed facade. Grounded in shape on
// ejyy-femto_go's exchange.go tick/event loop and enriched with the
// teacher's OHLCV aggregation (pkg/marketdata/aggregator.go, adapted into
// PrintAggregator in printaggregator.go) for the print events the tick loop
// emits.
package marketdata

import (
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/luxfi/log"

	"github.com/luxfeed/hftcore/pkg/clock"
	"github.com/luxfeed/hftcore/pkg/ring"
	"github.com/luxfeed/hftcore/pkg/types"
)

// ErrAlreadyRunning is returned by AddSymbol once the engine has started:
// spec.md tightens the source behavior (which allowed concurrent mutation
// of the symbol list) by rejecting late additions outright instead of
// racing with the producer.
var ErrAlreadyRunning = errors.New("marketdata: cannot add symbol while engine is running")

const tickInterval = time.Millisecond

type symbolState struct {
	tick types.Tick
}

// Engine is the single-producer tick generator.
type Engine struct {
	mu      sync.Mutex
	order   []string
	symbols map[string]*symbolState

	priceRand *rand.Rand
	volRand   *rand.Rand
	sizeRand  *rand.Rand

	out    *ring.SPSC[types.Tick]
	timer  *clock.PeriodicTimer
	logger log.Logger

	running    atomic.Bool
	dropped    atomic.Uint64
	onPrint    func(types.Trade)
}

// Config configures Engine construction.
type Config struct {
	// OutputCapacity is the SPSC ring capacity ticks are published into.
	OutputCapacity int
	// Logger defaults to log.Root().New("module", "marketdata") when nil.
	Logger log.Logger
	// OnPrint, if set, is invoked synchronously from the producer thread
	// whenever a symbol prints a trade (spec.md §4.F step 2's 1-in-5
	// print). Used to feed pkg/marketdata.PrintAggregator.
	OnPrint func(types.Trade)
}

// New constructs an Engine. Symbols must be added with AddSymbol before
// Start.
func New(cfg Config) *Engine {
	if cfg.OutputCapacity <= 0 {
		cfg.OutputCapacity = 4096
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Root().New("module", "marketdata")
	}
	seed := time.Now().UnixNano()
	return &Engine{
		symbols:   make(map[string]*symbolState),
		priceRand: rand.New(rand.NewSource(seed)),
		volRand:   rand.New(rand.NewSource(seed + 1)),
		sizeRand:  rand.New(rand.NewSource(seed + 2)),
		out:       ring.NewSPSC[types.Tick](cfg.OutputCapacity),
		logger:    logger,
		onPrint:   cfg.OnPrint,
	}
}

// AddSymbol registers symbol with an initial reference price. Disallowed
// once the engine is running.
func (e *Engine) AddSymbol(symbol string, price float64) error {
	if e.running.Load() {
		return ErrAlreadyRunning
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.symbols[symbol]; exists {
		return nil
	}
	st := &symbolState{
		tick: types.Tick{
			Symbol:  symbol,
			Bid:     price * 0.999,
			Ask:     price * 1.001,
			BidSize: drawSize(e.sizeRand),
			AskSize: drawSize(e.sizeRand),
			Last:    price,
		},
	}
	e.order = append(e.order, symbol)
	e.symbols[symbol] = st
	return nil
}

func drawSize(r *rand.Rand) float64 {
	return float64(100 + r.Intn(10_000-100+1))
}

// Output returns the SPSC ring the feed facade consumes ticks from.
func (e *Engine) Output() *ring.SPSC[types.Tick] {
	return e.out
}

// Start begins the producer loop. Idempotent while already running.
func (e *Engine) Start() {
	if e.running.Swap(true) {
		return
	}
	e.timer = clock.NewPeriodicTimer(tickInterval, e.tick)
	e.timer.Start()
	e.logger.Info("marketdata engine started")
}

// Stop halts the producer and waits for it to finish; no pushes occur
// after Stop returns.
func (e *Engine) Stop() {
	if !e.running.Swap(false) {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
		e.timer.Wait()
	}
	e.logger.Info("marketdata engine stopped")
}

// CurrentSnapshot returns a by-value copy of every symbol's current tick,
// taken under the engine's own lock so it is consistent with respect to
// AddSymbol but may race a single in-flight tick() call; callers needing a
// strictly paused view should Stop first.
func (e *Engine) CurrentSnapshot() []types.Tick {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]types.Tick, 0, len(e.order))
	for _, sym := range e.order {
		out = append(out, e.symbols[sym].tick)
	}
	return out
}

// DroppedCount returns how many ticks were discarded because the output
// ring was full. Non-fatal by design: the consumer is assumed slow.
func (e *Engine) DroppedCount() uint64 {
	return e.dropped.Load()
}

func (e *Engine) tick() {
	e.mu.Lock()
	order := e.order
	e.mu.Unlock()

	for _, sym := range order {
		e.mu.Lock()
		st, ok := e.symbols[sym]
		e.mu.Unlock()
		if !ok {
			continue
		}
		e.advance(st)
	}
}

func (e *Engine) advance(st *symbolState) {
	e.mu.Lock()
	t := st.tick
	e.mu.Unlock()

	delta := -0.001 + e.priceRand.Float64()*0.002
	_ = 0.8 + e.volRand.Float64()*0.4 // volatility multiplier: informational only, per spec.md §4.F

	mid := ((t.Bid + t.Ask) / 2) * (1 + delta)
	spread := mid * 0.001
	bid := mid - spread/2
	if bid < 0.01 {
		bid = 0.01
	}
	ask := mid + spread/2
	if ask < bid+0.01 {
		ask = bid + 0.01
	}
	t.Bid = bid
	t.Ask = ask

	if e.sizeRand.Intn(10) == 0 {
		t.BidSize = drawSize(e.sizeRand)
		t.AskSize = drawSize(e.sizeRand)
	}

	var trade *types.Trade
	if e.sizeRand.Intn(5) == 0 {
		last := t.Bid
		if e.sizeRand.Intn(2) == 1 {
			last = t.Ask
		}
		t.Last = last
		t.LastSize = drawSize(e.sizeRand) / 10

		trade = &types.Trade{
			Symbol:   t.Symbol,
			Price:    t.Last,
			Quantity: t.LastSize,
		}
	}

	t.Timestamp = clock.Now()

	e.mu.Lock()
	st.tick = t
	e.mu.Unlock()

	if trade != nil {
		trade.Timestamp = t.Timestamp
		if e.onPrint != nil {
			e.onPrint(*trade)
		}
	}

	if !e.out.Push(t) {
		e.dropped.Add(1) // full ring is non-fatal: consumer assumed slow
	}
}
