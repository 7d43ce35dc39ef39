// Command fix-benchmark drives pkg/fix through a serialize/parse round trip
// under load and reports latency/throughput via pkg/monitor.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/luxfeed/hftcore/pkg/fix"
	"github.com/luxfeed/hftcore/pkg/monitor"
	"github.com/luxfeed/hftcore/pkg/types"
)

func buildFrame(msgType string, seq int) *fix.Frame {
	switch msgType {
	case fix.MsgTypeNewOrderSingle:
		return fix.NewOrderSingle(types.Order{
			ID:       uint64(seq),
			Symbol:   "BTC-USD",
			Side:     types.Side(rand.Intn(2)),
			Type:     types.Limit,
			Price:    50000 + rand.Float64()*1000,
			Quantity: 1 + rand.Float64()*10,
		})
	case fix.MsgTypeExecutionReport:
		return fix.TradeToExecutionReport(fmt.Sprintf("ORD%d", seq), types.Trade{
			Symbol:    "BTC-USD",
			Price:     50000 + rand.Float64()*1000,
			Quantity:  rand.Float64() * 5,
			Timestamp: time.Now(),
		})
	default:
		return fix.TickToMarketDataSnapshot(types.Tick{
			Symbol:  "BTC-USD",
			Bid:     50090 + rand.Float64()*10,
			Ask:     50100 + rand.Float64()*10,
			BidSize: 1 + rand.Float64()*10,
			AskSize: 1 + rand.Float64()*10,
			Last:    50095 + rand.Float64()*10,
		})
	}
}

func main() {
	messageCount := flag.Int("messages", 50000, "messages per type")
	flag.Parse()

	msgTypes := map[string]string{
		fix.MsgTypeNewOrderSingle:     "NewOrderSingle",
		fix.MsgTypeExecutionReport:    "ExecutionReport",
		fix.MsgTypeMarketDataSnapshot: "MarketDataSnapshot",
	}

	fmt.Println("FIX codec benchmark")
	fmt.Println("--------------------")

	for mt, name := range msgTypes {
		mon := monitor.New()
		mon.StartMonitoring()

		// Every frame needs a sequence number to satisfy IsValid, stamped
		// the way Session.SendMessage would.
		for i := 0; i < *messageCount; i++ {
			f := buildFrame(mt, i)
			f.SetInt(34, int64(i+1))
			start := time.Now()
			raw := fix.Serialize(f)
			parsed := fix.Parse(raw)
			if !parsed.IsValid() {
				continue
			}
			mon.RecordLatency(time.Since(start))
			mon.RecordOperation(uint64(len(raw)))
		}

		lat := mon.LatencyStats()
		tp := mon.ThroughputStats()
		fmt.Printf("\n%s (%d messages)\n", name, *messageCount)
		fmt.Printf("  throughput: %.0f msgs/sec, %.0f bytes/sec\n", tp.MessagesPerSec, tp.BytesPerSec)
		fmt.Printf("  latency:    min=%v mean=%v p99=%v max=%v\n", lat.Min, lat.Mean, lat.P99, lat.Max)
	}
}
