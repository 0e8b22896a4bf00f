package domain

import (
	"testing"
	"time"
)

func TestFreshnessPolicy_WindowFor(t *testing.T) {
	p := DefaultFreshnessPolicy()

	tests := []struct {
		failures int
		want     time.Duration
	}{
		{0, DefaultShortWindow},
		{1, DefaultShortWindow},
		{2, DefaultShortWindow},
		{3, DefaultShortWindow}, // at threshold, still short
		{4, DefaultLongWindow},  // first count past threshold
		{5, DefaultLongWindow},
		{100, DefaultLongWindow},
	}

	for _, tt := range tests {
		got := p.WindowFor(tt.failures)
		if got != tt.want {
			t.Errorf("WindowFor(%d) = %v, want %v", tt.failures, got, tt.want)
		}
	}
}

func TestFreshnessPolicy_Fresh(t *testing.T) {
	p := DefaultFreshnessPolicy()

	tests := []struct {
		name     string
		age      time.Duration
		failures int
		want     bool
	}{
		{"zero age healthy", 0, 0, true},
		{"inside short window", 4 * time.Minute, 0, true},
		{"exactly at short window", 5 * time.Minute, 0, true},
		{"just past short window", 5*time.Minute + time.Second, 0, false},
		{"past short window at threshold", 10 * time.Minute, 3, false},
		{"past short window above threshold", 10 * time.Minute, 4, true},
		{"hours old above threshold", 23 * time.Hour, 4, true},
		{"exactly at long window", 24 * time.Hour, 4, true},
		{"past long window", 24*time.Hour + time.Second, 4, false},
		{"past long window many failures", 25 * time.Hour, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Fresh(tt.age, tt.failures)
			if got != tt.want {
				t.Errorf("Fresh(%v, %d) = %v, want %v", tt.age, tt.failures, got, tt.want)
			}
		})
	}
}

func TestFreshnessPolicy_CustomWindows(t *testing.T) {
	p := FreshnessPolicy{
		ShortWindow:      time.Minute,
		LongWindow:       time.Hour,
		FailureThreshold: 1,
	}

	if got := p.WindowFor(1); got != time.Minute {
		t.Errorf("WindowFor(1) = %v, want %v", got, time.Minute)
	}
	if got := p.WindowFor(2); got != time.Hour {
		t.Errorf("WindowFor(2) = %v, want %v", got, time.Hour)
	}
	if p.Fresh(30*time.Minute, 1) {
		t.Error("Fresh(30m, 1) = true, want false with 1m short window")
	}
	if !p.Fresh(30*time.Minute, 2) {
		t.Error("Fresh(30m, 2) = false, want true with 1h long window")
	}
}
