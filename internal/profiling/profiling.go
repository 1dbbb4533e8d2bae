package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Per-frame CPU timings for mesh rebuilds and digs.

// Sample is the accumulated time and call count of one tracked name.
type Sample struct {
	Name  string
	Total time.Duration
	Calls int
}

var (
	mu      sync.Mutex
	samples = make(map[string]*Sample)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("world.Chunk.Refresh")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		s, ok := samples[name]
		if !ok {
			s = &Sample{Name: name}
			samples[name] = s
		}
		s.Total += d
		s.Calls++
		mu.Unlock()
	}
}

// ResetFrame clears all samples. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(samples)
	mu.Unlock()
}

// Snapshot returns a copy of the current samples, slowest first.
func Snapshot() []Sample {
	mu.Lock()
	out := make([]Sample, 0, len(samples))
	for _, s := range samples {
		out = append(out, *s)
	}
	mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// SumWithPrefix totals every sample whose name starts with prefix.
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var total time.Duration
	for name, s := range samples {
		if strings.HasPrefix(name, prefix) {
			total += s.Total
		}
	}
	return total
}

// TopN formats the n slowest samples of the current frame.
// Example: "world.Chunk.Refresh:4.2ms(x3), world.Grid.Dig:4.5ms(x1)"
func TopN(n int) string {
	list := Snapshot()
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, s := range list[:n] {
		ms := float64(s.Total.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms(x%d)", s.Name, ms, s.Calls))
	}
	return strings.Join(parts, ", ")
}
