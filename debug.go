package starmap

import (
	"time"

	"golang.org/x/time/rate"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when debug mode is on.
type debugStats struct {
	cullTime time.Duration
	drawTime time.Duration
	visible  int
	indexed  int
	segments int
}

// debugLogInterval bounds how often frame stats are logged.
const debugLogInterval = time.Second

func newDebugLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(debugLogInterval), 1)
}

// debugLog logs frame stats at debug level, at most once per
// debugLogInterval.
func (m *Map) debugLog(stats debugStats) {
	if !m.debug || !m.debugLimiter.Allow() {
		return
	}
	m.log.Debug("frame",
		"cull", stats.cullTime,
		"draw", stats.drawTime,
		"total", stats.cullTime+stats.drawTime,
		"visible", stats.visible,
		"indexed", stats.indexed,
		"segments", stats.segments,
		"frames", m.sched.frames,
		"skipped", m.sched.skipped,
	)
}

// debugLogRebuild reports the shape of a freshly built index.
func (m *Map) debugLogRebuild(elapsed time.Duration, dups int) {
	m.log.Debug("index rebuilt",
		"objects", m.tree.Len(),
		"nodes", m.tree.NodeCount(),
		"depth", m.tree.Depth(),
		"duplicates", dups,
		"elapsed", elapsed,
	)
}
