package main

import (
	"sync"

	"github.com/RomanDataLab/Brazil-flightradar/internal/metrics"
	"github.com/RomanDataLab/Brazil-flightradar/internal/ws"
	"github.com/RomanDataLab/Brazil-flightradar/pkg/flightradar"
)

// eventBridge fans tracker events out to the WebSocket hub and the
// Prometheus collectors. It also reports when the first refresh cycle has
// completed, which is how --once runs know to exit: the tracker stays in
// StateRunning after a single-cycle run until Stop is called.
type eventBridge struct {
	hub *ws.Hub

	firstCycle sync.Once
	done       chan struct{}
}

func newEventBridge(hub *ws.Hub) *eventBridge {
	return &eventBridge{hub: hub, done: make(chan struct{})}
}

// FirstCycleDone is closed when the first refresh cycle completes.
func (b *eventBridge) FirstCycleDone() <-chan struct{} { return b.done }

func (b *eventBridge) OnStateChange(e flightradar.StateChangeEvent) {
	metrics.SetTrackerState(int(e.Current))
	b.hub.BroadcastStateChange(e.Previous.String(), e.Current.String(), e.Reason)
}

func (b *eventBridge) OnCacheRender(e flightradar.CacheRenderEvent) {
	b.hub.BroadcastView(e.View)
}

func (b *eventBridge) OnCycleComplete(e flightradar.CycleEvent) {
	b.hub.BroadcastView(e.View)
	b.hub.BroadcastCycle(ws.CycleData{
		Source:     string(e.View.Source),
		Entries:    e.View.Len(),
		Failures:   e.Failures,
		Reason:     e.Reason,
		NoUpdate:   e.NoUpdate,
		DurationMS: e.Duration.Milliseconds(),
	})

	metrics.RecordCycle(string(e.View.Source), e.Duration)
	if e.Err != nil {
		metrics.RecordFailure(e.Reason, e.Failures)
	} else if !e.NoUpdate {
		metrics.RecordLiveSuccess()
	}
	age := float64(-1)
	if e.View.AgeSeconds != nil {
		age = float64(*e.View.AgeSeconds)
	}
	metrics.SetSnapshot(e.View.Len(), age)

	b.firstCycle.Do(func() { close(b.done) })
}

func (b *eventBridge) OnMirrorPush(e flightradar.MirrorPushEvent) {
	metrics.RecordMirrorPush(e.Err)
}

var _ flightradar.EventHandler = (*eventBridge)(nil)
