package telemetry

import (
	"fmt"
	"log/slog"
)

// MorphEventType identifies the type of morph event.
type MorphEventType string

const (
	MorphStarted  MorphEventType = "started"
	MorphSettled  MorphEventType = "settled"
	MorphAborted  MorphEventType = "aborted" // switched again before settling
	MorphStalling MorphEventType = "stalling"
)

// MorphEvent is one row of morphs.csv.
type MorphEvent struct {
	Type        MorphEventType `csv:"type"`
	Target      string         `csv:"target"`
	Step        int64          `csv:"step"`
	SimTimeSec  float64        `csv:"sim_time"`
	Steps       int64          `csv:"steps"` // since the morph started
	MSD         float64        `csv:"msd"`
	Description string         `csv:"description"`
}

// LogEvent logs the event using slog.
func (e MorphEvent) LogEvent() {
	slog.Info("morph",
		"type", string(e.Type),
		"target", e.Target,
		"step", e.Step,
		"steps", e.Steps,
		"msd", e.MSD,
		"description", e.Description,
	)
}

// SettleTracker follows each morph from the moment its target becomes active
// until the mean squared distance to the target drops to the threshold.
type SettleTracker struct {
	threshold  float64
	stallAfter int64

	active     bool
	settled    bool
	stallNoted bool
	target     string
	startStep  int64
	startMSD   float64

	// Steps taken by each settled morph, in order.
	history []int64
}

// NewSettleTracker creates a tracker. A morph still unsettled after
// stallAfter steps is reported once as stalling; zero disables that.
func NewSettleTracker(threshold float64, stallAfter int64) *SettleTracker {
	return &SettleTracker{threshold: threshold, stallAfter: stallAfter}
}

// Start begins tracking a morph toward target. An unsettled morph in
// progress is reported as aborted.
func (t *SettleTracker) Start(target string, step int64, simTime, msd float64) []MorphEvent {
	var events []MorphEvent
	if t.active && !t.settled {
		events = append(events, MorphEvent{
			Type:        MorphAborted,
			Target:      t.target,
			Step:        step,
			SimTimeSec:  simTime,
			Steps:       step - t.startStep,
			MSD:         msd,
			Description: fmt.Sprintf("Switched away after %d steps", step-t.startStep),
		})
	}

	t.active = true
	t.settled = false
	t.stallNoted = false
	t.target = target
	t.startStep = step
	t.startMSD = msd

	return append(events, MorphEvent{
		Type:        MorphStarted,
		Target:      target,
		Step:        step,
		SimTimeSec:  simTime,
		MSD:         msd,
		Description: fmt.Sprintf("Morphing toward %s from msd %.4g", target, msd),
	})
}

// Observe checks the latest distance and returns any triggered events.
func (t *SettleTracker) Observe(step int64, simTime, msd float64) []MorphEvent {
	if !t.active || t.settled {
		return nil
	}
	elapsed := step - t.startStep

	if msd <= t.threshold {
		t.settled = true
		t.history = append(t.history, elapsed)
		return []MorphEvent{{
			Type:        MorphSettled,
			Target:      t.target,
			Step:        step,
			SimTimeSec:  simTime,
			Steps:       elapsed,
			MSD:         msd,
			Description: fmt.Sprintf("Settled on %s in %d steps (msd %.4g -> %.4g)", t.target, elapsed, t.startMSD, msd),
		}}
	}

	if t.stallAfter > 0 && elapsed >= t.stallAfter && !t.stallNoted {
		t.stallNoted = true
		return []MorphEvent{{
			Type:        MorphStalling,
			Target:      t.target,
			Step:        step,
			SimTimeSec:  simTime,
			Steps:       elapsed,
			MSD:         msd,
			Description: fmt.Sprintf("Still %.4g from %s after %d steps", msd, t.target, elapsed),
		}}
	}

	return nil
}

// Settled reports whether the current morph has reached its target.
func (t *SettleTracker) Settled() bool {
	return t.active && t.settled
}

// History returns the settle times, in steps, of every completed morph.
func (t *SettleTracker) History() []int64 {
	return t.history
}
