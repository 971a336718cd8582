package game

import (
	"log/slog"
	"strings"

	"github.com/pthm-cable/morph/systems"
	"github.com/pthm-cable/morph/telemetry"
)

// flushTelemetry writes a stats window when one is complete.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.state.Steps) {
		return
	}

	g.speeds = systems.Speeds(g.state.Buffers.Velocities(), g.speeds)
	stats := g.collector.Flush(g.state.Steps, g.state.Active.String(), g.lastMSD, g.speeds)
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndStep); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// recordMorphEvents counts, logs and writes settle tracker events.
func (g *Game) recordMorphEvents(events []telemetry.MorphEvent) {
	if len(events) == 0 {
		return
	}
	for _, e := range events {
		if e.Type == telemetry.MorphSettled {
			g.collector.RecordSettle()
		}
		if g.logStats {
			e.LogEvent()
		}
	}
	if err := g.outputManager.WriteMorphEvents(events); err != nil {
		slog.Error("failed to write morph events", "error", err)
	}
}

// exportPoints writes both curated point sets to the output directory.
func (g *Game) exportPoints() {
	for i, ps := range g.state.Sources {
		name := strings.ToLower(systems.Morph(i).String())
		if err := g.outputManager.WritePoints(name, ps); err != nil {
			slog.Error("failed to export points", "target", name, "error", err)
		}
	}
}
