package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartStep int64   `csv:"-"`
	WindowEndStep   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// State at window end
	Active    string `csv:"active"`
	Particles int    `csv:"particles"`

	// Events during window
	Switches int `csv:"switches"`
	Settles  int `csv:"settles"`

	// Distance to the active target (sampled at window end)
	MSD float64 `csv:"msd"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// SpeedStats summarizes a speed distribution.
type SpeedStats struct {
	Mean, P10, P50, P90, Max float64
}

// ComputeSpeedStats calculates mean, percentiles and maximum of values.
// values is sorted in place.
func ComputeSpeedStats(values []float64) SpeedStats {
	n := len(values)
	if n == 0 {
		return SpeedStats{}
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	sort.Float64s(values)

	return SpeedStats{
		Mean: sum / float64(n),
		P10:  Percentile(values, 0.10),
		P50:  Percentile(values, 0.50),
		P90:  Percentile(values, 0.90),
		Max:  values[n-1],
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartStep),
		slog.Int64("window_end", s.WindowEndStep),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("active", s.Active),
		slog.Int("particles", s.Particles),
		slog.Int("switches", s.Switches),
		slog.Int("settles", s.Settles),
		slog.Float64("msd", s.MSD),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndStep,
		"sim_time", s.SimTimeSec,
		"active", s.Active,
		"particles", s.Particles,
		"switches", s.Switches,
		"settles", s.Settles,
		"msd", s.MSD,
		"speed_mean", s.SpeedMean,
		"speed_p10", s.SpeedP10,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"speed_max", s.SpeedMax,
	)
}
