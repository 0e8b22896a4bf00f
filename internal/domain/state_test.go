package domain

import (
	"testing"
	"time"
)

func TestSnapshot_Empty(t *testing.T) {
	tests := []struct {
		name string
		snap *Snapshot
		want bool
	}{
		{"nil snapshot", nil, true},
		{"nil states", &Snapshot{CapturedAt: 100}, true},
		{"zero states", &Snapshot{CapturedAt: 100, States: []StateVector{}}, true},
		{"one state", &Snapshot{CapturedAt: 100, States: []StateVector{{ICAO24: "e48c11"}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshot_Len(t *testing.T) {
	var nilSnap *Snapshot
	if got := nilSnap.Len(); got != 0 {
		t.Errorf("nil Len() = %d, want 0", got)
	}

	snap := &Snapshot{States: []StateVector{{ICAO24: "e48c11"}, {ICAO24: "e49406"}}}
	if got := snap.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestTrackerState_HasSnapshot(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		state TrackerState
		want  bool
	}{
		{"zero value", TrackerState{}, false},
		{"snapshot without save time", TrackerState{Snapshot: &Snapshot{CapturedAt: 1}}, false},
		{"saved", TrackerState{Snapshot: &Snapshot{CapturedAt: 1}, SavedAt: now}, true},
		{"cleared keeps failures", TrackerState{ConsecutiveFailures: 7}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.HasSnapshot(); got != tt.want {
				t.Errorf("HasSnapshot() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrackerState_Age(t *testing.T) {
	saved := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	state := TrackerState{SavedAt: saved}

	now := saved.Add(90 * time.Second)
	if got := state.Age(now); got != 90*time.Second {
		t.Errorf("Age() = %v, want 90s", got)
	}
}

func TestEmptyView(t *testing.T) {
	v := EmptyView("rate_limited")

	if v.Source != SourceEmpty {
		t.Errorf("Source = %q, want %q", v.Source, SourceEmpty)
	}
	if v.Reason != "rate_limited" {
		t.Errorf("Reason = %q, want rate_limited", v.Reason)
	}
	if v.States == nil {
		t.Error("States = nil, want non-nil empty slice")
	}
	if v.Len() != 0 {
		t.Errorf("Len() = %d, want 0", v.Len())
	}
	if v.AgeSeconds != nil {
		t.Errorf("AgeSeconds = %v, want nil", *v.AgeSeconds)
	}
}
