package photonmap

import (
	"sort"
	"sync"
)

type Category uint8

const (
	Deposit     Category = iota // photon stored at a diffuse surface
	Absorb                      // absorbed by the surface
	Bounce                      // diffuse bounce not stored (first segment)
	Reflect                     // specular reflection
	Refract                     // transmitted through the surface
	TIR                         // total internal reflection (transmission fell back to mirror)
	Escape                      // left the scene
	Roulette                    // terminated by Russian roulette
	BounceLimit                 // hit the max bounce count
	numCategories
)

var categoryNames = [numCategories]string{"deposit", "absorb", "bounce", "reflect", "refract", "tir", "escape", "roulette", "bounce_limit"}

func (c Category) String() string {
	if c < numCategories {
		return categoryNames[c]
	}
	return "unknown"
}

// TraceStats counts trace events; one per worker, merged after the run.
type TraceStats struct {
	Counts    [numCategories]int64
	MaxBounce int
}

func (s *TraceStats) add(c Category, bounce int) {
	if s == nil {
		return
	}
	s.Counts[c]++
	if bounce > s.MaxBounce {
		s.MaxBounce = bounce
	}
}

func (s *TraceStats) Merge(o *TraceStats) {
	if s == nil || o == nil {
		return
	}
	for i := range s.Counts {
		s.Counts[i] += o.Counts[i]
	}
	s.MaxBounce = imax(s.MaxBounce, o.MaxBounce)
}

func (s *TraceStats) Total() int64 {
	var n int64
	for _, c := range s.Counts {
		n += c
	}
	return n
}

// TraceLogCache keeps the merged stats of every named pass (general, caustic, camera).
type TraceLogCache struct {
	mu    sync.Mutex
	stats map[string]*TraceStats
}

var traceLog = &TraceLogCache{
	stats: make(map[string]*TraceStats),
}

func logTrace(name string, st *TraceStats) {
	traceLog.mu.Lock()
	defer traceLog.mu.Unlock()
	cur, ok := traceLog.stats[name]
	if !ok {
		cur = &TraceStats{}
		traceLog.stats[name] = cur
	}
	cur.Merge(st)
}

func traceStats(log Logger) {
	traceLog.mu.Lock()
	defer traceLog.mu.Unlock()
	names := make([]string, 0, len(traceLog.stats))
	for k := range traceLog.stats {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		v := traceLog.stats[k]
		log.Printf("Trace pass %s: %d events, max bounce %d\n", k, v.Total(), v.MaxBounce)
		for c := Category(0); c < numCategories; c++ {
			if v.Counts[c] > 0 {
				log.Printf("  %-12s %d\n", c, v.Counts[c])
			}
		}
	}
}

func resetTraceLog() {
	traceLog.mu.Lock()
	defer traceLog.mu.Unlock()
	traceLog.stats = make(map[string]*TraceStats)
}
