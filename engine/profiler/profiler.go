package profiler

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-assets/common"
	log "github.com/sirupsen/logrus"
)

// Profiler tracks how many resources of each kind were materialized and how long that took,
// plus a memory snapshot taken on Report. It is safe for concurrent use.
type Profiler struct {
	mu        sync.Mutex
	logger    log.FieldLogger
	started   time.Time
	counts    map[string]int
	durations map[string]time.Duration
	memStats  runtime.MemStats
}

// ProfilerOption is a functional option applied in NewProfiler.
type ProfilerOption func(*Profiler)

// WithLogger sets the logger Report writes to.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - ProfilerOption: a function that applies the logger option
func WithLogger(logger log.FieldLogger) ProfilerOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProfiler creates a new Profiler with empty counters.
//
// Parameters:
//   - options: a variadic list of ProfilerOption functions
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		logger:    log.StandardLogger(),
		started:   time.Now(),
		counts:    make(map[string]int),
		durations: make(map[string]time.Duration),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Track records one materialization of the given kind that began at start.
// Intended for use as `defer p.Track(kind, time.Now())`.
//
// Parameters:
//   - kind: the resource kind, e.g. "texture"
//   - start: when the materialization began
func (p *Profiler) Track(kind string, start time.Time) {
	elapsed := time.Since(start)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts[kind]++
	p.durations[kind] += elapsed
}

// Counts returns a copy of the per-kind materialization counts.
//
// Returns:
//   - map[string]int: counts keyed by kind
func (p *Profiler) Counts() map[string]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]int, len(p.counts))
	for k, v := range p.counts {
		out[k] = v
	}
	return out
}

// Report logs one line per tracked kind followed by a heap snapshot.
// Statistics include: count and total time per kind, heap usage, GC count, total memory.
func (p *Profiler) Report() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, kind := range common.SortedKeys(p.counts) {
		p.logger.WithFields(log.Fields{
			"kind":     kind,
			"count":    p.counts[kind],
			"duration": p.durations[kind].String(),
		}).Info("[Profiler] materialized")
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	p.logger.Infof("[Profiler] Uptime: %s | Heap: %.2f MB | GC: %d | Sys: %.2f MB",
		time.Since(p.started).Round(time.Millisecond), allocMB, p.memStats.NumGC, sysMB)
}
