package chash_test

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/theflywheel/chash"
)

const benchmarkItemCount = 10_000

var benchStrategies = []chash.Strategy{
	chash.Chaining,
	chash.LinearProbing,
	chash.QuadraticProbing,
	chash.DoubleHashing,
}

// benchKeys returns n distinct keys spread over the key space so that the
// modulo hash produces collisions at small capacities.
func benchKeys(n int) []uint16 {
	keys := make([]uint16, n)
	for i := range keys {
		keys[i] = uint16((i * 6151) % int(chash.MaxKey))
	}
	return keys
}

// getMemoryUsage returns the current memory stats as a formatted string
func getMemoryUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return fmt.Sprintf("Memory: Alloc=%.1fMB Sys=%.1fMB",
		float64(m.Alloc)/1024/1024,
		float64(m.Sys)/1024/1024)
}

// reportHeap attaches the live heap size to the benchmark result.
func reportHeap(b *testing.B) {
	b.Helper()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), "alloc_mb")
}

func fillTable(b *testing.B, s chash.Strategy, keys []uint16) *chash.Table {
	b.Helper()
	tb, err := chash.New(16, chash.WithStrategy(s))
	if err != nil {
		b.Fatalf("Failed to create table: %v", err)
	}
	for _, k := range keys {
		if err := tb.Add(k, "v"); err != nil {
			b.Fatalf("Failed to add key %d: %v", k, err)
		}
	}
	return tb
}
