// Command benchmark-lockfree drives pkg/ring's SPSC and MPSC transports
// under sustained load and reports throughput and latency percentiles via
// pkg/monitor.
package main

import (
	"flag"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/luxfeed/hftcore/pkg/monitor"
	"github.com/luxfeed/hftcore/pkg/ring"
)

func benchmarkSPSC(capacity, count int) monitor.LatencyStats {
	r := ring.NewSPSC[int](capacity)
	mon := monitor.New()
	mon.StartMonitoring()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < count; i++ {
			for !r.Push(i) {
				runtime.Gosched()
			}
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < count; i++ {
			start := time.Now()
			for {
				if _, ok := r.Pop(); ok {
					break
				}
				runtime.Gosched()
			}
			mon.RecordLatency(time.Since(start))
			mon.RecordOperation(8)
		}
	}()

	wg.Wait()
	return mon.LatencyStats()
}

func benchmarkMPSC(capacity, producers, countPerProducer int) monitor.LatencyStats {
	r := ring.NewMPSC[int](capacity)
	mon := monitor.New()
	mon.StartMonitoring()

	var wg sync.WaitGroup
	wg.Add(producers + 1)

	total := producers * countPerProducer
	for p := 0; p < producers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < countPerProducer; i++ {
				for !r.Push(i) {
					runtime.Gosched()
				}
			}
		}()
	}

	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			start := time.Now()
			for {
				if _, ok := r.Pop(); ok {
					break
				}
				runtime.Gosched()
			}
			mon.RecordLatency(time.Since(start))
			mon.RecordOperation(8)
		}
	}()

	wg.Wait()
	return mon.LatencyStats()
}

func printStats(name string, elapsed time.Duration, count int, stats monitor.LatencyStats) {
	fmt.Printf("%-24s messages/sec=%.0f min=%v mean=%v p99=%v max=%v\n",
		name, float64(count)/elapsed.Seconds(), stats.Min, stats.Mean, stats.P99, stats.Max)
}

func main() {
	capacity := flag.Int("capacity", 4096, "ring capacity")
	count := flag.Int("count", 1_000_000, "messages per benchmark")
	producers := flag.Int("producers", runtime.NumCPU(), "MPSC producer goroutines")
	flag.Parse()

	fmt.Println("lock-free ring transport benchmark")
	fmt.Println("-----------------------------------")

	start := time.Now()
	spscStats := benchmarkSPSC(*capacity, *count)
	printStats("SPSC", time.Since(start), *count, spscStats)

	perProducer := *count / *producers
	start = time.Now()
	mpscStats := benchmarkMPSC(*capacity, *producers, perProducer)
	printStats(fmt.Sprintf("MPSC (%d producers)", *producers), time.Since(start), perProducer*(*producers), mpscStats)
}
