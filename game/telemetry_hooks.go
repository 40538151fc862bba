package game

import (
	"log/slog"

	"github.com/pthm-cable/orrery/components"
	"github.com/pthm-cable/orrery/systems"
	"github.com/pthm-cable/orrery/telemetry"
)

// onCometRetired records a comet removed by the comet system.
func (g *Game) onCometRetired(r systems.RetiredComet) {
	switch r.Reason {
	case components.RetireEscaped:
		g.collector.Record(telemetry.EventCometEscaped)
	default:
		g.collector.Record(telemetry.EventCometExpired)
	}

	rec, ok := g.lifetimes.Retire(r.ID, g.tick, r.Age, r.MaxAge, r.Position, r.Reason.String())
	if !ok {
		return
	}
	if err := g.output.WriteComet(rec); err != nil {
		slog.Error("failed to write comet", "error", err)
	}
}

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	live := g.comets.Live()
	ages := make([]float64, len(live))
	for i, c := range live {
		ages[i] = float64(c.Age)
	}

	stats := g.collector.Flush(g.tick, g.elapsed, g.registry.SimTime(), ages)
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
