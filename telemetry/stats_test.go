package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSpeedStats(t *testing.T) {
	values := []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}
	s := ComputeSpeedStats(values)

	if math.Abs(s.Mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", s.Mean)
	}
	if math.Abs(s.P10-0.19) > 0.01 {
		t.Errorf("p10 = %v, want ~0.19", s.P10)
	}
	if math.Abs(s.P50-0.55) > 0.01 {
		t.Errorf("p50 = %v, want ~0.55", s.P50)
	}
	if math.Abs(s.P90-0.91) > 0.01 {
		t.Errorf("p90 = %v, want ~0.91", s.P90)
	}
	if s.Max != 1.0 {
		t.Errorf("max = %v, want 1", s.Max)
	}
}

func TestComputeSpeedStatsEmpty(t *testing.T) {
	if s := ComputeSpeedStats(nil); s != (SpeedStats{}) {
		t.Errorf("empty input should return zero stats, got %+v", s)
	}
}

func TestCollector_FlushResetsWindow(t *testing.T) {
	c := NewCollector(1.0, 0.05)
	if c.WindowDurationSteps() != 20 {
		t.Fatalf("WindowDurationSteps = %d, want 20", c.WindowDurationSteps())
	}
	if c.ShouldFlush(19) {
		t.Error("flushed before the window elapsed")
	}
	if !c.ShouldFlush(20) {
		t.Error("expected flush at window end")
	}

	c.RecordSwitch()
	c.RecordSwitch()
	c.RecordSettle()
	stats := c.Flush(20, "B", 0.25, []float64{0.3, 0.1, 0.2})

	if stats.Switches != 2 || stats.Settles != 1 {
		t.Errorf("events = %d switches, %d settles", stats.Switches, stats.Settles)
	}
	if stats.Particles != 3 || stats.Active != "B" || stats.MSD != 0.25 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-6 {
		t.Errorf("sim time = %v, want 1", stats.SimTimeSec)
	}
	if stats.SpeedMax != 0.3 {
		t.Errorf("speed max = %v, want 0.3", stats.SpeedMax)
	}

	next := c.Flush(40, "B", 0, nil)
	if next.Switches != 0 || next.Settles != 0 || next.WindowStartStep != 20 {
		t.Errorf("counters not reset: %+v", next)
	}
}
