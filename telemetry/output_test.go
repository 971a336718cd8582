package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/systems"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager, got %v, %v", om, err)
	}
	// nil receiver is a no-op
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManager_WritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for i := int64(1); i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndStep: i * 100, Active: "A"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,") {
		t.Errorf("unexpected header %q", lines[0])
	}
}

func TestOutputManager_MorphEventsAndConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	events := []MorphEvent{
		{Type: MorphStarted, Target: "B", Step: 0},
		{Type: MorphSettled, Target: "B", Step: 42, Steps: 42},
	}
	if err := om.WriteMorphEvents(events); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteMorphEvents(nil); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}

func TestOutputManager_WritePoints(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	ps := systems.PointSet{
		{X: 0.25, Y: 0.5, Alpha: 1},
		{X: 0.75, Y: 0.125, Alpha: 0.5},
	}
	if err := om.WritePoints("a", ps); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, "points_a.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var got []systems.SamplePoint
	if err := gocsv.UnmarshalFile(f, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != ps[0] || got[1] != ps[1] {
		t.Errorf("points = %+v, want %+v", got, ps)
	}
}
